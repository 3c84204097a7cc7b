package handler

import (
	"context"

	"github.com/ZertGraf/team-feedback/internal/domain"
)

// ViewerHeader identifies the current member of a request.
const ViewerHeader = "X-Member-ID"

type viewerKey struct{}

// WithViewer stores the current member in ctx.
func WithViewer(ctx context.Context, viewer domain.TeamMember) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFrom returns the current member stored by the viewer middleware.
func ViewerFrom(ctx context.Context) (domain.TeamMember, bool) {
	viewer, ok := ctx.Value(viewerKey{}).(domain.TeamMember)
	return viewer, ok
}
