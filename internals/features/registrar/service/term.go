// file: internals/features/registrar/service/term.go
package service

import (
	"context"
	"time"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/repository"
)

var _ Terms = (*TermService)(nil)

// TermService resolves the classrooms of a term, and the sections held in them, on uuid lookup.
type TermService struct {
	*CrudService[model.Term, dto.TermRequest]
	classrooms repository.Repository[model.Classroom]
	sections   repository.Repository[model.Section]
}

func NewTermService(
	repo repository.Repository[model.Term],
	classrooms repository.Repository[model.Classroom],
	sections repository.Repository[model.Section],
) *TermService {
	s := &TermService{
		CrudService: NewCrudService[model.Term, dto.TermRequest]("term", "Term", repo),
		classrooms:  classrooms,
		sections:    sections,
	}
	s.addChecks(checkTermDates)
	return s
}

func checkTermDates(_ context.Context, t *model.Term) error {
	start, end := time.Time(t.StartDate), time.Time(t.EndDate)
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return IllegalArgument("term %q ends before it starts", t.Name)
	}
	return nil
}

func (s *TermService) FindByUUID(ctx context.Context, uuid string) (*model.Term, error) {
	term, err := s.CrudService.FindByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	rooms, err := s.classrooms.List(ctx, repository.Where("term_uuid = ?", term.UUID, func(c *model.Classroom) bool {
		return c.TermUUID != nil && *c.TermUUID == term.UUID
	}))
	if err != nil {
		return nil, &PersistenceError{Op: OpList, Entity: "classroom", Identity: term.UUID, Err: err}
	}
	term.Classrooms = rooms
	if len(rooms) == 0 {
		return term, nil
	}

	ids := make([]string, 0, len(rooms))
	in := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.UUID)
		in[r.UUID] = struct{}{}
	}
	sections, err := s.sections.List(ctx, repository.Where("classroom_uuid IN ?", ids, func(sec *model.Section) bool {
		if sec.ClassroomUUID == nil {
			return false
		}
		_, ok := in[*sec.ClassroomUUID]
		return ok
	}))
	if err != nil {
		return nil, &PersistenceError{Op: OpList, Entity: "section", Identity: term.UUID, Err: err}
	}
	term.Sections = sections
	return term, nil
}
