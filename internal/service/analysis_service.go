package service

import (
	"time"

	"github.com/rcliao/triage/internal/domain"
	"github.com/rcliao/triage/internal/engine"
)

// AnalysisService runs the scoring engine for transport callers. It
// owns the one impure input the engine refuses to read itself: the
// reference date, taken from an injectable clock.
type AnalysisService struct {
	engine  *engine.Engine
	storage TaskStorage
	now     func() time.Time
}

// AnalyzeRequest is one analysis call as seen by transports. When
// IncludeSaved is set, the saved task list joins the batch ahead of
// the submitted tasks, so ad-hoc submissions can depend on saved ids.
type AnalyzeRequest struct {
	Tasks        []domain.TaskInput `json:"tasks"`
	Strategy     string             `json:"strategy,omitempty"`
	Weights      *domain.Weights    `json:"weights,omitempty"`
	IncludeSaved bool               `json:"include_saved,omitempty"`
}

func NewAnalysisService(storage TaskStorage, clock func() time.Time) *AnalysisService {
	if clock == nil {
		clock = time.Now
	}
	return &AnalysisService{
		engine:  engine.New(),
		storage: storage,
		now:     clock,
	}
}

func (s *AnalysisService) Analyze(req AnalyzeRequest) ([]domain.ScoredTask, error) {
	engineReq, err := s.buildRequest(req)
	if err != nil {
		return nil, err
	}
	return s.engine.Analyze(engineReq)
}

func (s *AnalysisService) Suggest(req AnalyzeRequest, n int) ([]domain.Suggestion, error) {
	engineReq, err := s.buildRequest(req)
	if err != nil {
		return nil, err
	}
	return s.engine.Suggest(engineReq, n)
}

func (s *AnalysisService) buildRequest(req AnalyzeRequest) (engine.Request, error) {
	batch := req.Tasks
	if req.IncludeSaved {
		saved, err := s.storage.ListTasks()
		if err != nil {
			return engine.Request{}, err
		}
		merged := make([]domain.TaskInput, 0, len(saved)+len(req.Tasks))
		for _, t := range saved {
			merged = append(merged, t.Input())
		}
		merged = append(merged, req.Tasks...)
		batch = merged
	}

	return engine.Request{
		Tasks:    batch,
		Strategy: req.Strategy,
		Weights:  req.Weights,
		Now:      domain.DateOf(s.now()),
	}, nil
}
