package quiz

import "time"

type QuizContainer struct {
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(catalog Catalog, runTTL time.Duration) *QuizContainer {
	service := NewService(catalog, runTTL)
	handler := NewHandler(service)

	return &QuizContainer{
		Service: service,
		Handler: handler,
	}
}
