package service

import (
	"context"
	"fmt"
	"time"

	"wm-backend/internal/apperror"
	"wm-backend/internal/audit"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
	"wm-backend/internal/permission"
	"wm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// --- DTOs ---

type AddLinkRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RemoveLinkRequest struct {
	URL string `json:"url"`
}

type LinksResponse struct {
	Message string      `json:"message"`
	Links   model.Links `json:"links"`
}

// --- Interface ---

// WorkService runs every Work operation through permission resolution,
// payload checks, persistence, auditing and response redaction.
type WorkService interface {
	List(ctx context.Context, actor *model.User, page, limit int) ([]map[string]any, int64, error)
	Get(ctx context.Context, actor *model.User, id string) (map[string]any, error)
	Create(ctx context.Context, actor *model.User, payload WorkPayload) (map[string]any, error)
	Update(ctx context.Context, actor *model.User, id string, payload WorkPayload) (map[string]any, error)
	Delete(ctx context.Context, actor *model.User, id string) error
	AddLink(ctx context.Context, actor *model.User, id string, req AddLinkRequest) (*LinksResponse, error)
	RemoveLink(ctx context.Context, actor *model.User, id string, req RemoveLinkRequest) (*LinksResponse, error)
}

// WorkDeps are the collaborators of the work service.
type WorkDeps struct {
	Works      repository.WorkRepository
	Users      repository.UserRepository
	Categories repository.LookupRepository[model.Category]
	Types      repository.LookupRepository[model.WorkType]
	Channels   repository.LookupRepository[model.SalesChannel]
	Guard      *permission.Guard
	Recorder   *audit.Recorder
	Translator *locale.Translator
	Validate   *validator.Validate
	Logger     *zap.SugaredLogger
	Now        func() time.Time
}

type workService struct {
	works      repository.WorkRepository
	users      repository.UserRepository
	categories repository.LookupRepository[model.Category]
	types      repository.LookupRepository[model.WorkType]
	channels   repository.LookupRepository[model.SalesChannel]
	guard      *permission.Guard
	recorder   *audit.Recorder
	tr         *locale.Translator
	validate   *validator.Validate
	log        *zap.SugaredLogger
	now        func() time.Time
}

func NewWorkService(d WorkDeps) WorkService {
	s := &workService{
		works:      d.Works,
		users:      d.Users,
		categories: d.Categories,
		types:      d.Types,
		channels:   d.Channels,
		guard:      d.Guard,
		recorder:   d.Recorder,
		tr:         d.Translator,
		validate:   d.Validate,
		log:        d.Logger,
		now:        d.Now,
	}
	if s.validate == nil {
		s.validate = validator.New()
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// --- Implementation ---

func (s *workService) List(ctx context.Context, actor *model.User, page, limit int) ([]map[string]any, int64, error) {
	eff, err := s.guard.Resolve(ctx, actor)
	if err != nil {
		return nil, 0, err
	}
	works, total, err := s.works.List(ctx, offset(page, limit), limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch works: %w", err)
	}
	items := make([]map[string]any, 0, len(works))
	for i := range works {
		items = append(items, eff.FilterReadable(workRecord(s.tr, &works[i])))
	}
	return items, total, nil
}

func (s *workService) Get(ctx context.Context, actor *model.User, id string) (map[string]any, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	eff, err := s.guard.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	return eff.FilterReadable(workRecord(s.tr, w)), nil
}

func (s *workService) Create(ctx context.Context, actor *model.User, payload WorkPayload) (map[string]any, error) {
	eff, err := s.guard.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !eff.Can(model.CapabilityWorkCreate) {
		return nil, apperror.Forbidden(s.tr.T(locale.ErrCreateDenied))
	}
	if err := s.guard.CheckWritable(eff, permission.PayloadKeys(payload)); err != nil {
		return nil, err
	}

	w := &model.Work{Links: model.Links{}}
	verr := &apperror.ValidationError{}
	if _, ok := payload.has(model.FieldWorkName); !ok {
		verr.Add(string(model.FieldWorkName), s.tr.T(locale.ErrRequired))
	}
	if err := s.applyPayload(ctx, w, payload, verr); err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	s.stampPrintingControl(w, false, actor)

	if err := s.works.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create work: %w", err)
	}
	created, err := s.works.FindByID(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload work: %w", err)
	}

	s.recorder.Record(ctx, actor, created, model.ActionCreate, nil, nil)
	return eff.FilterReadable(workRecord(s.tr, created)), nil
}

// Update applies a partial payload. The audit diff compares the snapshot
// read at the start of the request with the reloaded row; concurrent
// writers between those reads are not detected.
func (s *workService) Update(ctx context.Context, actor *model.User, id string, payload WorkPayload) (map[string]any, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	eff, err := s.guard.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckWritable(eff, permission.PayloadKeys(payload)); err != nil {
		return nil, err
	}

	before := workSnapshot(w)
	wasControlled := w.PrintingControl

	verr := &apperror.ValidationError{}
	if err := s.applyPayload(ctx, w, payload, verr); err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	s.stampPrintingControl(w, wasControlled, actor)

	if err := s.works.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to update work: %w", err)
	}
	updated, err := s.works.FindByID(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload work: %w", err)
	}

	after := workSnapshot(updated)
	if audit.Diff(before, after) != nil {
		s.recorder.Record(ctx, actor, updated, model.ActionUpdate, before, after)
	}
	return eff.FilterReadable(workRecord(s.tr, updated)), nil
}

// Delete records the movement before removing the row so the work can
// still be named in the description.
func (s *workService) Delete(ctx context.Context, actor *model.User, id string) error {
	ok, err := s.guard.CanDelete(ctx, actor)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Forbidden(s.tr.T(locale.ErrDeleteDenied))
	}
	w, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	s.recorder.Record(ctx, actor, w, model.ActionDelete, nil, nil)

	if err := s.works.Delete(ctx, w.ID); err != nil {
		return notFoundOr(err, s.tr.T(locale.ErrWorkNotFound), "failed to delete work")
	}
	return nil
}

func (s *workService) AddLink(ctx context.Context, actor *model.User, id string, req AddLinkRequest) (*LinksResponse, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.guard.CanWriteField(ctx, actor, model.FieldLinks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Forbidden(s.tr.T(locale.ErrLinkAddDenied))
	}
	if !s.validURL(req.URL) {
		verr := apperror.Validation(s.tr.T(locale.ErrLinkInvalidURL))
		verr.Add("url", s.tr.T(locale.ErrLinkInvalidURL))
		return nil, verr
	}

	now := s.now()
	oldCount := len(w.Links)
	links := append(append(model.Links{}, w.Links...), model.Link{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		AddedBy:     fmt.Sprintf("%s (%s)", actor.DisplayName(), actor.ID),
		AddedAt:     &now,
	})
	w.Links = links

	if err := s.works.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to save links: %w", err)
	}
	s.recordLinkCount(ctx, actor, w, oldCount, len(links))
	return &LinksResponse{Message: s.tr.T(locale.MsgLinkAdded), Links: links}, nil
}

func (s *workService) RemoveLink(ctx context.Context, actor *model.User, id string, req RemoveLinkRequest) (*LinksResponse, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.guard.CanWriteField(ctx, actor, model.FieldLinks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Forbidden(s.tr.T(locale.ErrLinkRemoveDenied))
	}
	if req.URL == "" {
		return nil, apperror.Validation(s.tr.T(locale.ErrLinkURLRequired))
	}

	oldCount := len(w.Links)
	links, removed := w.Links.Without(req.URL)
	if removed == 0 {
		return nil, apperror.NotFound(s.tr.T(locale.ErrLinkNotFound))
	}
	w.Links = links

	if err := s.works.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to save links: %w", err)
	}
	s.recordLinkCount(ctx, actor, w, oldCount, len(links))
	return &LinksResponse{Message: s.tr.T(locale.MsgLinkRemoved), Links: links}, nil
}

// recordLinkCount audits link operations as a count summary rather than a
// field diff.
func (s *workService) recordLinkCount(ctx context.Context, actor *model.User, w *model.Work, before, after int) {
	s.recorder.Record(ctx, actor, w, model.ActionUpdate,
		audit.Snapshot{"links_count": before},
		audit.Snapshot{"links_count": after})
}

// stampPrintingControl applies the printing control transitions: turning
// control on stamps the date and defaults the controller to the actor,
// turning it off clears both.
func (s *workService) stampPrintingControl(w *model.Work, wasControlled bool, actor *model.User) {
	switch {
	case !wasControlled && w.PrintingControl:
		now := s.now()
		w.PrintingControlDate = &now
		if w.PrintingControlledByID == nil && actor != nil {
			id := actor.ID
			w.PrintingControlledByID = &id
		}
	case wasControlled && !w.PrintingControl:
		w.PrintingControlledByID = nil
		w.PrintingControlledBy = nil
		w.PrintingControlDate = nil
	}
}

func (s *workService) find(ctx context.Context, id string) (*model.Work, error) {
	msg := s.tr.T(locale.ErrWorkNotFound)
	workID, err := parseID(id, msg)
	if err != nil {
		return nil, err
	}
	w, err := s.works.FindByID(ctx, workID)
	if err != nil {
		return nil, notFoundOr(err, msg, "failed to fetch work")
	}
	return w, nil
}
