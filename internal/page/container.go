package page

type PageContainer struct {
	Repo    PageRepository
	Service PageService
	Handler *Handler
}

func NewPageContainer(repo PageRepository, siteURL string) *PageContainer {
	service := NewService(repo, siteURL)
	handler := NewHandler(service)

	return &PageContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
