package response

type ErrorBody struct {
	Error string `json:"error"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// Error 失败响应（msg 为空时用状态码默认文案）
func Error(status int, msg string) ErrorBody {
	if msg == "" {
		msg = CodeMsgMap[status]
	}
	return ErrorBody{Error: msg}
}

func Message(msg string) MessageBody {
	return MessageBody{Message: msg}
}
