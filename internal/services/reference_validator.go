package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
)

// ReferenceValidator 校验视频引用的分类/流派/演员是否存在。
type ReferenceValidator struct {
	categories  CategoryGateway
	genres      GenreGateway
	castMembers CastMemberGateway
}

// NewReferenceValidator 构造 ReferenceValidator。
func NewReferenceValidator(categories CategoryGateway, genres GenreGateway, castMembers CastMemberGateway) *ReferenceValidator {
	return &ReferenceValidator{categories: categories, genres: genres, castMembers: castMembers}
}

// Validate 将缺失引用追加到 n；仅在网关查询失败时返回错误。
func (v *ReferenceValidator) Validate(ctx context.Context, video *po.Video, n *po.Notification) error {
	checks := []struct {
		label   string
		ids     []string
		gateway ExistenceGateway
	}{
		{"categories", video.Categories, v.categories},
		{"genres", video.Genres, v.genres},
		{"cast members", video.CastMembers, v.castMembers},
	}
	for _, c := range checks {
		if err := validateReferences(ctx, c.label, c.ids, c.gateway, n); err != nil {
			return err
		}
	}
	return nil
}

func validateReferences(ctx context.Context, label string, ids []string, gateway ExistenceGateway, n *po.Notification) error {
	if len(ids) == 0 {
		return nil
	}
	existing, err := gateway.ExistsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", label, err)
	}
	if len(existing) >= len(ids) {
		return nil
	}
	found := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	missing := make([]string, 0, len(ids)-len(existing))
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		n.Append(fmt.Sprintf("Some %s could not be found: %s", label, strings.Join(missing, ", ")))
	}
	return nil
}
