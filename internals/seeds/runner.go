package seeds

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/service"
)

// File is the layout of a seed document.
type File struct {
	Courses     []dto.CourseRequest     `json:"courses"`
	Students    []dto.StudentRequest    `json:"students"`
	Instructors []dto.InstructorRequest `json:"instructors"`
	Terms       []dto.TermRequest       `json:"terms"`
}

type Result struct {
	Created int
	Skipped int
}

// RunAllSeeds loads path and creates every record whose natural key
// (course code, email, term name) is not present yet.
func RunAllSeeds(ctx context.Context, reg *service.Registry, path string, log *zap.Logger) (Result, error) {
	log.Info("reading seed file", zap.String("path", path))
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := sonic.Unmarshal(raw, &f); err != nil {
		return Result{}, fmt.Errorf("decode seed file: %w", err)
	}
	return Seed(ctx, reg, f, log)
}

func Seed(ctx context.Context, reg *service.Registry, f File, log *zap.Logger) (Result, error) {
	var res Result
	tally := func(created bool) {
		if created {
			res.Created++
		} else {
			res.Skipped++
		}
	}

	for _, c := range f.Courses {
		created, err := createUnlessFound(func() error {
			_, err := reg.Courses.FindByCode(ctx, deref(c.Code))
			return err
		}, func() error {
			_, err := reg.Courses.Create(ctx, c)
			return err
		})
		if err != nil {
			return res, fmt.Errorf("seed course %q: %w", deref(c.Code), err)
		}
		tally(created)
	}

	for _, s := range f.Students {
		created, err := createUnlessFound(func() error {
			_, err := reg.Students.FindByEmail(ctx, deref(s.Email))
			return err
		}, func() error {
			_, err := reg.Students.Create(ctx, s)
			return err
		})
		if err != nil {
			return res, fmt.Errorf("seed student %q: %w", deref(s.Email), err)
		}
		tally(created)
	}

	for _, i := range f.Instructors {
		created, err := createUnlessFound(func() error {
			_, err := reg.Instructors.FindByEmail(ctx, deref(i.Email))
			return err
		}, func() error {
			_, err := reg.Instructors.Create(ctx, i)
			return err
		})
		if err != nil {
			return res, fmt.Errorf("seed instructor %q: %w", deref(i.Email), err)
		}
		tally(created)
	}

	if len(f.Terms) > 0 {
		existing, err := reg.Terms.FindAll(ctx)
		if err != nil {
			return res, fmt.Errorf("seed terms: %w", err)
		}
		names := make(map[string]bool, len(existing))
		for _, t := range existing {
			names[strings.ToLower(t.Name)] = true
		}
		for _, t := range f.Terms {
			key := strings.ToLower(strings.TrimSpace(deref(t.Name)))
			if names[key] {
				tally(false)
				continue
			}
			if _, err := reg.Terms.Create(ctx, t); err != nil {
				return res, fmt.Errorf("seed term %q: %w", deref(t.Name), err)
			}
			names[key] = true
			tally(true)
		}
	}

	log.Info("seeding done", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return res, nil
}

func createUnlessFound(find, create func() error) (bool, error) {
	err := find()
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, service.ErrNotFound):
		return false, err
	}
	if err := create(); err != nil {
		return false, err
	}
	return true, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
