package clients

import (
	"context"
	"fmt"

	"seci_service/internal/domain"
	categorypb "seci_service/proto"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CategoryServiceClient talks to a remote category service over gRPC and
// speaks domain types. Status codes are turned back into domain error kinds.
type CategoryServiceClient interface {
	Save(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error)
	Update(ctx context.Context, id string, req domain.CategoryRequest) (*domain.CategoryResponse, error)
	FindAll(ctx context.Context) ([]domain.CategoryResponse, error)
	FindByID(ctx context.Context, id string) (*domain.CategoryResponse, error)
	DeleteByID(ctx context.Context, id string) error
	FindAllActive(ctx context.Context) ([]domain.CategoryResponse, error)
	FindAllWithStats(ctx context.Context, page, size int) (*domain.Page[domain.CategoryWithStatsResponse], error)

	Close() error
}

type categoryGRPCClient struct {
	client categorypb.CategoryServiceClient
	conn   *grpc.ClientConn
	log    *logrus.Logger
}

// NewCategoryServiceClient creates a client for target. Extra dial options are
// appended after the default insecure transport credentials.
func NewCategoryServiceClient(target string, logger *logrus.Logger, opts ...grpc.DialOption) (CategoryServiceClient, error) {
	logger.Infof("CategoryClient: Creating gRPC client for target: %s", target)
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		logger.Errorf("CategoryClient: Failed to create client for %s: %v", target, err)
		return nil, fmt.Errorf("failed to connect to category service at %s: %w", target, err)
	}

	return &categoryGRPCClient{
		client: categorypb.NewCategoryServiceClient(conn),
		conn:   conn,
		log:    logger,
	}, nil
}

func (c *categoryGRPCClient) Close() error {
	if c.conn != nil {
		c.log.Info("CategoryClient: Closing gRPC connection")
		return c.conn.Close()
	}
	return nil
}

func requestToProto(req domain.CategoryRequest, id string) (*structpb.Struct, error) {
	m := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}
	if req.Active != nil {
		m["active"] = *req.Active
	}
	if id != "" {
		m["id"] = id
	}
	return structpb.NewStruct(m)
}

func (c *categoryGRPCClient) Save(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	c.log.Debugf("CategoryClient(gRPC): Calling Save: Name=%s", req.Name)
	in, err := requestToProto(req, "")
	if err != nil {
		return nil, fmt.Errorf("could not encode category request: %w", err)
	}
	out, err := c.client.Save(ctx, in)
	if err != nil {
		return nil, fromStatus(err)
	}
	cat := categoryFromProto(out)
	return &cat, nil
}

func (c *categoryGRPCClient) Update(ctx context.Context, id string, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	c.log.Debugf("CategoryClient(gRPC): Calling Update: ID=%s", id)
	in, err := requestToProto(req, id)
	if err != nil {
		return nil, fmt.Errorf("could not encode category request: %w", err)
	}
	out, err := c.client.Update(ctx, in)
	if err != nil {
		return nil, fromStatus(err)
	}
	cat := categoryFromProto(out)
	return &cat, nil
}

func (c *categoryGRPCClient) FindAll(ctx context.Context) ([]domain.CategoryResponse, error) {
	c.log.Debug("CategoryClient(gRPC): Calling FindAll")
	out, err := c.client.FindAll(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fromStatus(err)
	}
	return categoriesFromProto(out), nil
}

func (c *categoryGRPCClient) FindByID(ctx context.Context, id string) (*domain.CategoryResponse, error) {
	c.log.Debugf("CategoryClient(gRPC): Calling FindById: ID=%s", id)
	out, err := c.client.FindById(ctx, wrapperspb.String(id))
	if err != nil {
		return nil, fromStatus(err)
	}
	cat := categoryFromProto(out)
	return &cat, nil
}

func (c *categoryGRPCClient) DeleteByID(ctx context.Context, id string) error {
	c.log.Debugf("CategoryClient(gRPC): Calling DeleteById: ID=%s", id)
	if _, err := c.client.DeleteById(ctx, wrapperspb.String(id)); err != nil {
		return fromStatus(err)
	}
	return nil
}

func (c *categoryGRPCClient) FindAllActive(ctx context.Context) ([]domain.CategoryResponse, error) {
	c.log.Debug("CategoryClient(gRPC): Calling FindAllActive")
	out, err := c.client.FindAllActive(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fromStatus(err)
	}
	return categoriesFromProto(out), nil
}

func (c *categoryGRPCClient) FindAllWithStats(ctx context.Context, page, size int) (*domain.Page[domain.CategoryWithStatsResponse], error) {
	c.log.Debugf("CategoryClient(gRPC): Calling FindAllWithStats: Page=%d, Size=%d", page, size)
	in, err := structpb.NewStruct(map[string]interface{}{"page": page, "size": size})
	if err != nil {
		return nil, fmt.Errorf("could not encode page request: %w", err)
	}
	out, err := c.client.FindAllWithStats(ctx, in)
	if err != nil {
		return nil, fromStatus(err)
	}

	fields := out.GetFields()
	items := []domain.CategoryWithStatsResponse{}
	for _, v := range fields["items"].GetListValue().GetValues() {
		s := v.GetStructValue()
		items = append(items, domain.CategoryWithStatsResponse{
			CategoryResponse: categoryFromProto(s),
			Stats: domain.CategoryStats{
				ReportCount: int64(s.GetFields()["stats"].GetStructValue().GetFields()["reportCount"].GetNumberValue()),
			},
		})
	}
	return &domain.Page[domain.CategoryWithStatsResponse]{
		Items:         items,
		Page:          int(fields["page"].GetNumberValue()),
		Size:          int(fields["size"].GetNumberValue()),
		TotalElements: int64(fields["totalElements"].GetNumberValue()),
		TotalPages:    int(fields["totalPages"].GetNumberValue()),
	}, nil
}

func categoryFromProto(s *structpb.Struct) domain.CategoryResponse {
	f := s.GetFields()
	return domain.CategoryResponse{
		ID:          f["id"].GetStringValue(),
		Name:        f["name"].GetStringValue(),
		Description: f["description"].GetStringValue(),
		Active:      f["active"].GetBoolValue(),
	}
}

func categoriesFromProto(l *structpb.ListValue) []domain.CategoryResponse {
	out := make([]domain.CategoryResponse, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		out = append(out, categoryFromProto(v.GetStructValue()))
	}
	return out
}

// fromStatus wraps the domain kind matching a gRPC status code so callers can
// use errors.Is; other errors pass through unchanged.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", st.Message(), domain.ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("%s: %w", st.Message(), domain.ErrConflict)
	case codes.InvalidArgument:
		return fmt.Errorf("%s: %w", st.Message(), domain.ErrValidation)
	default:
		return err
	}
}
