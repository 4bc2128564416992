package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
)

func TestCircularCreateDefaultsAudience(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewCircularService(repo, zap.NewNop())

	circular, err := svc.Create(context.Background(), &dto.CreateCircularRequest{
		Title: "Holiday notice",
		Body:  "Campus closed on Friday.",
	}, "admin-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if circular.Audience != model.AudienceAll {
		t.Errorf("audience = %q, want all", circular.Audience)
	}
}

func TestCircularAudienceVisibility(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewCircularService(repo, zap.NewNop())
	ctx := context.Background()

	for _, tc := range []struct{ title, audience string }{
		{"Everyone", model.AudienceAll},
		{"Exam schedule", model.AudienceStudents},
		{"Staff meeting", model.AudienceStaff},
	} {
		if _, err := svc.Create(ctx, &dto.CreateCircularRequest{
			Title:    tc.title,
			Body:     "body",
			Audience: tc.audience,
		}, "admin-1"); err != nil {
			t.Fatalf("Create %s: %v", tc.title, err)
		}
	}

	page := &dto.PaginationRequest{}

	tests := []struct {
		role string
		want int
	}{
		{model.RoleStudent, 2}, // all + students
		{model.RoleStaff, 2},   // all + staff
		{model.RoleAdmin, 3},   // everything
	}
	for _, tc := range tests {
		got, total, err := svc.ListForRole(ctx, tc.role, page)
		if err != nil {
			t.Fatalf("ListForRole(%s): %v", tc.role, err)
		}
		if len(got) != tc.want || total != int64(tc.want) {
			t.Errorf("ListForRole(%s) = %d (total %d), want %d", tc.role, len(got), total, tc.want)
		}
	}

	// students must never see staff-only circulars
	got, _, err := svc.ListForRole(ctx, model.RoleStudent, page)
	if err != nil {
		t.Fatalf("ListForRole: %v", err)
	}
	for _, c := range got {
		if c.Audience == model.AudienceStaff {
			t.Errorf("student saw staff circular %q", c.Title)
		}
	}
}
