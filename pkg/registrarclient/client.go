// Package registrarclient is an HTTP implementation of the registrar service contracts.
// Its entity clients satisfy the same Finder/Manager interfaces as the store-backed
// services, so either can be injected where a service is expected.
package registrarclient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
)

// BreakerConfig enables a circuit breaker around every call. Transport errors and
// 5xx responses count as failures.
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
}

type Config struct {
	// BaseURL is the API root, e.g. http://localhost:3000/api
	BaseURL string
	Token   string
	Timeout time.Duration
	Breaker *BreakerConfig
	Logger  *zap.Logger
}

// Client holds one entity client per noun over a shared HTTP client.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	log     *zap.Logger
	base    string

	Students    *StudentClient
	Courses     *CourseClient
	Sections    *CrudClient[model.Section, dto.SectionRequest]
	Classrooms  *CrudClient[model.Classroom, dto.ClassroomRequest]
	Terms       *CrudClient[model.Term, dto.TermRequest]
	Instructors *InstructorClient
	TestRuns    *TestRunClient
}

func New(cfg Config) *Client {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}

	c := &Client{
		http: httpClient,
		log:  log.Named("registrarclient"),
		base: strings.TrimRight(cfg.BaseURL, "/"),
	}
	if b := cfg.Breaker; b != nil {
		threshold := b.FailureThreshold
		if threshold == 0 {
			threshold = 5
		}
		c.breaker = gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
			Name:        b.Name,
			MaxRequests: b.MaxRequests,
			Interval:    b.Interval,
			Timeout:     b.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.log.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}

	c.Students = &StudentClient{newCrudClient[model.Student, dto.StudentRequest](c, "student", "Student")}
	c.Courses = &CourseClient{newCrudClient[model.Course, dto.CourseRequest](c, "course", "Course")}
	c.Sections = newCrudClient[model.Section, dto.SectionRequest](c, "section", "Section")
	c.Classrooms = newCrudClient[model.Classroom, dto.ClassroomRequest](c, "classroom", "Classroom")
	c.Terms = newCrudClient[model.Term, dto.TermRequest](c, "term", "Term")
	c.Instructors = &InstructorClient{newCrudClient[model.Instructor, dto.InstructorRequest](c, "instructor", "Instructor")}
	c.TestRuns = &TestRunClient{newCrudClient[model.TestRun, dto.TestRunRequest](c, "testRun", "TestRun")}
	return c
}

var errServerStatus = errors.New("server error status")

// do runs one round trip, through the breaker when configured. A 5xx comes back
// as a normal response; only transport failures (and an open breaker) return an error.
func (c *Client) do(ctx context.Context, method, url string, query map[string]string, body any) (*resty.Response, error) {
	call := func() (*resty.Response, error) {
		req := c.http.R().SetContext(ctx)
		if len(query) > 0 {
			req.SetQueryParams(query)
		}
		if body != nil {
			req.SetBody(body)
		}
		start := time.Now()
		resp, err := req.Execute(method, url)
		if err != nil {
			c.log.Debug("call failed", zap.String("method", method), zap.String("url", url), zap.Error(err))
			return resp, err
		}
		c.log.Debug("call",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		if resp.StatusCode() >= 500 {
			return resp, errServerStatus
		}
		return resp, nil
	}

	var (
		resp *resty.Response
		err  error
	)
	if c.breaker != nil {
		resp, err = c.breaker.Execute(call)
	} else {
		resp, err = call()
	}
	if errors.Is(err, errServerStatus) {
		return resp, nil
	}
	return resp, err
}
