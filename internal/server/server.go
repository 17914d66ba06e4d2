package server

// Сервер объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей.
type Server struct {
	DealServer
	PlanServer
}

func NewServer(
	dealServer DealServer,
	planServer PlanServer,
) Server {
	return Server{
		DealServer: dealServer,
		PlanServer: planServer,
	}
}
