package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
)

func TestSubjectCreate(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewSubjectService(repo, testCodec(), zap.NewNop())
	ctx := context.Background()

	subject, err := svc.Create(ctx, &dto.CreateSubjectRequest{
		Code:    "MATH101",
		Name:    "Calculus",
		Section: "A",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if subject.Code != "MATH101" {
		t.Errorf("code = %q", subject.Code)
	}

	// duplicate code
	if _, err := svc.Create(ctx, &dto.CreateSubjectRequest{Code: "MATH101", Name: "Again"}); !errors.Is(err, ErrSubjectExists) {
		t.Errorf("duplicate: got %v, want ErrSubjectExists", err)
	}

	// legacy prefix is stripped before the duplicate check
	if _, err := svc.Create(ctx, &dto.CreateSubjectRequest{Code: "SUBJ-MATH101", Name: "Legacy"}); !errors.Is(err, ErrSubjectExists) {
		t.Errorf("legacy duplicate: got %v, want ErrSubjectExists", err)
	}
}

func TestAssignStaffRoleCheck(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewSubjectService(repo, testCodec(), zap.NewNop())
	ctx := context.Background()

	seedSubject(t, repo, "MATH101", "Calculus")
	seedUser(t, repo, "staff-1", "staff1@college.edu", "Prof One", model.RoleStaff)
	seedUser(t, repo, "stud-1", "student1@college.edu", "Student One", model.RoleStudent)

	ref := dto.SubjectRef{SubjectCode: "MATH101"}

	if err := svc.AssignStaff(ctx, ref, "staff-1"); err != nil {
		t.Fatalf("AssignStaff: %v", err)
	}
	if err := svc.AssignStaff(ctx, ref, "stud-1"); !errors.Is(err, ErrNotStaff) {
		t.Errorf("assign student: got %v, want ErrNotStaff", err)
	}
	if err := svc.AssignStaff(ctx, ref, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("assign unknown: got %v, want ErrUserNotFound", err)
	}

	// assigning twice stays a single link
	if err := svc.AssignStaff(ctx, ref, "staff-1"); err != nil {
		t.Fatalf("re-AssignStaff: %v", err)
	}
	subjects, err := svc.StaffSubjects(ctx, "staff-1")
	if err != nil {
		t.Fatalf("StaffSubjects: %v", err)
	}
	if len(subjects) != 1 {
		t.Errorf("staff linked to %d subjects, want 1", len(subjects))
	}
}

func TestEnrollRoleCheck(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewSubjectService(repo, testCodec(), zap.NewNop())
	ctx := context.Background()

	seedSubject(t, repo, "MATH101", "Calculus")
	seedUser(t, repo, "staff-1", "staff1@college.edu", "Prof One", model.RoleStaff)
	seedUser(t, repo, "stud-1", "student1@college.edu", "Student One", model.RoleStudent)

	ref := dto.SubjectRef{SubjectCode: "MATH101"}

	if err := svc.Enroll(ctx, ref, "stud-1"); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := svc.Enroll(ctx, ref, "staff-1"); !errors.Is(err, ErrNotStudent) {
		t.Errorf("enroll staff: got %v, want ErrNotStudent", err)
	}

	subjects, err := svc.StudentSubjects(ctx, "stud-1")
	if err != nil {
		t.Fatalf("StudentSubjects: %v", err)
	}
	if len(subjects) != 1 || subjects[0].Code != "MATH101" {
		t.Errorf("StudentSubjects = %+v", subjects)
	}
}

func TestStudentsSortedByRoll(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewSubjectService(repo, testCodec(), zap.NewNop())
	ctx := context.Background()

	subject := seedSubject(t, repo, "MATH101", "Calculus")
	seedUser(t, repo, "stud-12", "student12@college.edu", "Student Twelve", model.RoleStudent)
	seedUser(t, repo, "stud-3", "student3@college.edu", "Student Three", model.RoleStudent)
	seedUser(t, repo, "stud-x", "transfer@college.edu", "Transfer Student", model.RoleStudent)

	for _, id := range []string{"stud-12", "stud-3", "stud-x"} {
		if err := repo.Enrollment.EnsureLink(ctx, subject.SubjectID, id); err != nil {
			t.Fatalf("enroll %s: %v", id, err)
		}
	}

	students, err := svc.Students(ctx, dto.SubjectRef{SubjectCode: "MATH101"})
	if err != nil {
		t.Fatalf("Students: %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("roster size = %d, want 3", len(students))
	}
	if students[0].RollNo != "21BCS003" || students[1].RollNo != "21BCS012" {
		t.Errorf("roll order = [%s, %s]", students[0].RollNo, students[1].RollNo)
	}
	// accounts outside the convention sort last with no roll
	if students[2].RollNo != "" || students[2].Email != "transfer@college.edu" {
		t.Errorf("tail = %+v", students[2])
	}
}
