package grpc

import (
	"math"

	"seci_service/internal/domain"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func categoryToMap(cat *domain.CategoryResponse) map[string]interface{} {
	return map[string]interface{}{
		"id":          cat.ID,
		"name":        cat.Name,
		"description": cat.Description,
		"active":      cat.Active,
	}
}

func mapCategoryToProto(cat *domain.CategoryResponse) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(categoryToMap(cat))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "could not encode category: %v", err)
	}
	return s, nil
}

func mapCategoriesToProto(cats []domain.CategoryResponse) (*structpb.ListValue, error) {
	values := make([]interface{}, 0, len(cats))
	for i := range cats {
		values = append(values, categoryToMap(&cats[i]))
	}
	list, err := structpb.NewList(values)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "could not encode categories: %v", err)
	}
	return list, nil
}

func mapStatsPageToProto(p *domain.Page[domain.CategoryWithStatsResponse]) (*structpb.Struct, error) {
	items := make([]interface{}, 0, len(p.Items))
	for i := range p.Items {
		m := categoryToMap(&p.Items[i].CategoryResponse)
		m["stats"] = map[string]interface{}{"reportCount": p.Items[i].Stats.ReportCount}
		items = append(items, m)
	}
	s, err := structpb.NewStruct(map[string]interface{}{
		"items":         items,
		"page":          p.Page,
		"size":          p.Size,
		"totalElements": p.TotalElements,
		"totalPages":    p.TotalPages,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "could not encode page: %v", err)
	}
	return s, nil
}

func mapProtoToCategoryRequest(s *structpb.Struct) domain.CategoryRequest {
	fields := s.GetFields()
	req := domain.CategoryRequest{
		Name:        fields["name"].GetStringValue(),
		Description: fields["description"].GetStringValue(),
	}
	if v, ok := fields["active"]; ok {
		if _, isBool := v.GetKind().(*structpb.Value_BoolValue); isBool {
			active := v.GetBoolValue()
			req.Active = &active
		}
	}
	return req
}

// intField reads a whole number from a Struct field, falling back to def when
// the field is absent.
func intField(s *structpb.Struct, name string, def int) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return def, nil
	}
	n, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int(n.NumberValue), nil
}
