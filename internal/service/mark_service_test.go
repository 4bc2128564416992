package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
)

func TestMarkPostAndOverwrite(t *testing.T) {
	repo, store := newTestRepo()
	svc := NewMarkService(repo, testCodec(), zap.NewNop())
	ctx := context.Background()

	subject := seedSubject(t, repo, "MATH101", "Calculus")
	seedUser(t, repo, "stud-1", "student1@college.edu", "Student One", model.RoleStudent)
	seedUser(t, repo, "stud-2", "student2@college.edu", "Student Two", model.RoleStudent)

	posted, err := svc.Post(ctx, &dto.PostMarksRequest{
		SubjectRef: dto.SubjectRef{SubjectCode: "MATH101"},
		Exam:       "internal-1",
		MaxMarks:   50,
		Marks: []dto.MarkInput{
			{StudentID: "stud-1", Marks: 42},
			{StudentID: "stud-2", Marks: 37},
		},
	}, "staff-1")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if len(posted) != 2 {
		t.Fatalf("posted %d marks, want 2", len(posted))
	}
	if posted[0].MaxMarks != 50 {
		t.Errorf("max marks = %d, want 50", posted[0].MaxMarks)
	}
	if posted[0].Subject == nil || posted[0].Subject.ID != subject.SubjectID {
		t.Errorf("subject not attached: %+v", posted[0].Subject)
	}

	// re-posting the same exam overwrites, never duplicates
	if _, err := svc.Post(ctx, &dto.PostMarksRequest{
		SubjectRef: dto.SubjectRef{SubjectCode: "MATH101"},
		Exam:       "internal-1",
		MaxMarks:   50,
		Marks:      []dto.MarkInput{{StudentID: "stud-1", Marks: 45}},
	}, "staff-1"); err != nil {
		t.Fatalf("re-Post: %v", err)
	}
	if len(store.marks) != 2 {
		t.Errorf("stored %d marks after overwrite, want 2", len(store.marks))
	}

	mine, err := svc.StudentMarks(ctx, "stud-1")
	if err != nil {
		t.Fatalf("StudentMarks: %v", err)
	}
	if len(mine) != 1 || mine[0].Marks != 45 {
		t.Errorf("StudentMarks = %+v, want one entry with 45", mine)
	}
}

func TestMarkPostDefaultsMaxMarks(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewMarkService(repo, testCodec(), zap.NewNop())
	ctx := context.Background()

	seedSubject(t, repo, "PHY101", "Physics")

	posted, err := svc.Post(ctx, &dto.PostMarksRequest{
		SubjectRef: dto.SubjectRef{SubjectCode: "PHY101"},
		Exam:       "internal-1",
		Marks:      []dto.MarkInput{{StudentID: "stud-1", Marks: 80}},
	}, "staff-1")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if posted[0].MaxMarks != 100 {
		t.Errorf("max marks = %d, want default 100", posted[0].MaxMarks)
	}
}

func TestMarkPostUnknownSubject(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewMarkService(repo, testCodec(), zap.NewNop())

	_, err := svc.Post(context.Background(), &dto.PostMarksRequest{
		SubjectRef: dto.SubjectRef{SubjectCode: "NOPE999"},
		Exam:       "internal-1",
		Marks:      []dto.MarkInput{{StudentID: "stud-1", Marks: 10}},
	}, "staff-1")
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("got %v, want ErrSubjectNotFound", err)
	}
}

func TestSubjectMarksFilterByExam(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewMarkService(repo, testCodec(), zap.NewNop())
	ctx := context.Background()

	seedSubject(t, repo, "MATH101", "Calculus")

	for _, exam := range []string{"internal-1", "internal-2"} {
		if _, err := svc.Post(ctx, &dto.PostMarksRequest{
			SubjectRef: dto.SubjectRef{SubjectCode: "MATH101"},
			Exam:       exam,
			Marks:      []dto.MarkInput{{StudentID: "stud-1", Marks: 30}},
		}, "staff-1"); err != nil {
			t.Fatalf("Post %s: %v", exam, err)
		}
	}

	all, err := svc.SubjectMarks(ctx, dto.SubjectRef{SubjectCode: "MATH101"}, "")
	if err != nil {
		t.Fatalf("SubjectMarks: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all exams: %d marks, want 2", len(all))
	}

	one, err := svc.SubjectMarks(ctx, dto.SubjectRef{SubjectCode: "MATH101"}, "internal-2")
	if err != nil {
		t.Fatalf("SubjectMarks filtered: %v", err)
	}
	if len(one) != 1 || one[0].Exam != "internal-2" {
		t.Errorf("filtered = %+v, want one internal-2 row", one)
	}
}
