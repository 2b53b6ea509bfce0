package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다. 사용자는 브라질 고객이므로 포르투갈어로 작성합니다.
const (
	// 400 Bad Request
	ErrMsgBadRequest            = "Requisição inválida"
	ErrMsgBadRequestInvalidBody = "Não foi possível ler o corpo da requisição. Verifique o formato JSON"
	ErrMsgInvalidPhone          = "Número de telefone inválido. Use o formato (DDD) 9XXXX-XXXX"
	ErrMsgInvalidPassword       = "A senha deve ter entre 4 e 72 caracteres"
	ErrMsgInvalidTargetPrice    = "O preço desejado deve ser maior que zero"
	ErrMsgEmptyQuery            = "Informe um termo de busca"

	// 401 Unauthorized
	ErrMsgInvalidCredentials = "Telefone ou senha incorretos"

	// 404 Not Found
	ErrMsgNotFound        = "Recurso não encontrado"
	ErrMsgProductNotFound = "Produto não encontrado"

	// 409 Conflict
	ErrMsgConflict = "O recurso já existe"

	// 413 Request Entity Too Large
	ErrMsgRequestEntityTooLarge = "Corpo da requisição muito grande"

	// 415 Unsupported Media Type
	ErrMsgUnsupportedMediaType = "Content-Type não suportado"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "Muitas requisições. Tente novamente em instantes"

	// 500 Internal Server Error
	ErrMsgInternalServer = "Erro interno do servidor"

	// 503 Service Unavailable
	ErrMsgServiceUnavailable = "Serviço temporariamente indisponível. Tente novamente em instantes"
	ErrMsgOffersUnavailable  = "Não foi possível consultar as ofertas agora. Tente novamente em instantes"

	// 504 Gateway Timeout
	ErrMsgTimeout = "A requisição demorou demais para ser processada"
)
