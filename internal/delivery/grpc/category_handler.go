package grpc

import (
	"context"
	"errors"

	"seci_service/internal/domain"
	"seci_service/internal/usecase"
	categorypb "seci_service/proto"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const defaultPageSize = 10

type CategoryHandler struct {
	categoryUseCase usecase.CategoryUseCase
	log             *logrus.Logger
}

var _ categorypb.CategoryServiceServer = (*CategoryHandler)(nil)

func NewCategoryHandler(cuc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: cuc,
		log:             logger,
	}
}

func (h *CategoryHandler) Save(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	catReq := mapProtoToCategoryRequest(req)
	h.log.Infof("gRPC Handler: Received Save request: Name=%s", catReq.Name)

	created, err := h.categoryUseCase.Save(ctx, catReq)
	if err != nil {
		h.log.Errorf("gRPC Handler: Save use case error: %v", err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}

	h.log.Infof("gRPC Handler: Category created successfully: ID=%s", created.ID)
	return mapCategoryToProto(created)
}

func (h *CategoryHandler) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()["id"].GetStringValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "Category id is required for update")
	}
	h.log.Infof("gRPC Handler: Received Update request: ID=%s", id)

	updated, err := h.categoryUseCase.Update(ctx, id, mapProtoToCategoryRequest(req))
	if err != nil {
		h.log.Errorf("gRPC Handler: Update use case error for ID %s: %v", id, err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}

	h.log.Infof("gRPC Handler: Category updated successfully: ID=%s", updated.ID)
	return mapCategoryToProto(updated)
}

func (h *CategoryHandler) FindAll(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	h.log.Info("gRPC Handler: Received FindAll request")

	cats, err := h.categoryUseCase.FindAll(ctx)
	if err != nil {
		h.log.Errorf("gRPC Handler: FindAll use case error: %v", err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}
	return mapCategoriesToProto(cats)
}

func (h *CategoryHandler) FindById(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := req.GetValue()
	h.log.Infof("gRPC Handler: Received FindById request: ID=%s", id)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "Category id is required")
	}

	cat, err := h.categoryUseCase.FindByID(ctx, id)
	if err != nil {
		h.log.Warnf("gRPC Handler: FindById use case error for ID %s: %v", id, err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}
	return mapCategoryToProto(cat)
}

func (h *CategoryHandler) DeleteById(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	id := req.GetValue()
	h.log.Infof("gRPC Handler: Received DeleteById request: ID=%s", id)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "Category id is required")
	}

	if err := h.categoryUseCase.DeleteByID(ctx, id); err != nil {
		h.log.Warnf("gRPC Handler: DeleteById use case error for ID %s: %v", id, err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}

	h.log.Infof("gRPC Handler: Category deleted successfully: ID=%s", id)
	return &emptypb.Empty{}, nil
}

func (h *CategoryHandler) FindAllActive(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	h.log.Info("gRPC Handler: Received FindAllActive request")

	cats, err := h.categoryUseCase.FindAllActive(ctx)
	if err != nil {
		h.log.Errorf("gRPC Handler: FindAllActive use case error: %v", err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}
	return mapCategoriesToProto(cats)
}

func (h *CategoryHandler) FindAllWithStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page, err := intField(req, "page", 0)
	if err != nil {
		return nil, err
	}
	size, err := intField(req, "size", defaultPageSize)
	if err != nil {
		return nil, err
	}
	h.log.Infof("gRPC Handler: Received FindAllWithStats request: Page=%d, Size=%d", page, size)

	result, err := h.categoryUseCase.FindAllWithStats(ctx, page, size)
	if err != nil {
		h.log.Errorf("gRPC Handler: FindAllWithStats use case error: %v", err)
		return nil, mapDomainErrorToGrpcStatus(err)
	}
	return mapStatsPageToProto(result)
}

func mapDomainErrorToGrpcStatus(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Errorf(codes.Internal, "Internal server error: %v", err)
	}
}
