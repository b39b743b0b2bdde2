package mocks

//go:generate go run github.com/golang/mock/mockgen -destination=mock_video_repository.go -package=mocks github.com/bionicotaku/lingo-services-media/internal/services VideoRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_existence_gateway.go -package=mocks github.com/bionicotaku/lingo-services-media/internal/services ExistenceGateway
//go:generate go run github.com/golang/mock/mockgen -destination=mock_media_resource_gateway.go -package=mocks github.com/bionicotaku/lingo-services-media/internal/services MediaResourceGateway
//go:generate go run github.com/golang/mock/mockgen -destination=mock_outbox_enqueuer.go -package=mocks github.com/bionicotaku/lingo-services-media/internal/services OutboxEnqueuer
//go:generate go run github.com/golang/mock/mockgen -destination=mock_media_status_service.go -package=mocks github.com/bionicotaku/lingo-services-media/internal/services MediaStatusServiceInterface
