package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ieeespac/spac_site/internal/domain"
	"github.com/ieeespac/spac_site/internal/dto"
	"github.com/ieeespac/spac_site/internal/helper"
	"github.com/ieeespac/spac_site/internal/helper/utils"
	"github.com/ieeespac/spac_site/internal/interfaces"
	"github.com/ieeespac/spac_site/internal/repository"
)

const (
	DefaultResumeMaxBytes = 5 * 1024 * 1024 // 5MB
	DefaultResumeFolder   = "spac/resumes"
	DefaultUploadTimeout  = 20 * time.Second

	msgSuccess        = "Thanks! Your profile was submitted."
	msgResumeTooLarge = "Your resume is too large. Please upload a smaller file."
	msgUploadFailed   = "We couldn't upload your resume. Please try again."
	msgWriteFailed    = "We couldn't save your profile. Please try again."
	msgInFlight       = "A submission for this email is already in progress."
)

var (
	ErrUploadFailed        = errors.New("resume upload failed")
	ErrProfileWriteFailed  = errors.New("profile write failed")
	ErrSubmissionInFlight  = errors.New("submission already in flight")
	ErrUploaderUnavailable = errors.New("uploader is not configured")
)

// requiredFields lists the required inputs in display order.
var requiredFields = []struct {
	field string // struct field name reported by the validator
	key   string
	label string
}{
	{"FirstName", "first_name", "First Name"},
	{"LastName", "last_name", "Last Name"},
	{"Email", "email", "Email Address"},
	{"University", "university", "University"},
	{"Program", "program", "Program"},
}

type RegistrationService interface {
	Submit(ctx context.Context, form dto.RegistrationForm) dto.SubmissionResult
	ListRegistrations(ctx context.Context, limit, offset int) (*dto.RegistrationListResponse, error)
	MaxResumeBytes() int64
}

type RegistrationOptions struct {
	ResumeFolder   string
	MaxResumeBytes int64
	UploadTimeout  time.Duration
	Now            func() time.Time
}

type registrationService struct {
	repo     repository.RegistrationRepository
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler
	guard    interfaces.SubmissionGuard
	validate *validator.Validate

	folder        string
	maxBytes      int64
	uploadTimeout time.Duration
	now           func() time.Time
}

// NewRegistrationService wires the submission routine. producer and guard may be nil.
func NewRegistrationService(
	repo repository.RegistrationRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
	guard interfaces.SubmissionGuard,
	opts RegistrationOptions,
) RegistrationService {
	if opts.ResumeFolder == "" {
		opts.ResumeFolder = DefaultResumeFolder
	}
	if opts.MaxResumeBytes <= 0 {
		opts.MaxResumeBytes = DefaultResumeMaxBytes
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = DefaultUploadTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &registrationService{
		repo:          repo,
		uploader:      uploader,
		producer:      producer,
		guard:         guard,
		validate:      validator.New(),
		folder:        opts.ResumeFolder,
		maxBytes:      opts.MaxResumeBytes,
		uploadTimeout: opts.UploadTimeout,
		now:           opts.Now,
	}
}

func (s *registrationService) MaxResumeBytes() int64 {
	return s.maxBytes
}

func (s *registrationService) Submit(ctx context.Context, form dto.RegistrationForm) dto.SubmissionResult {
	form = trimForm(form)
	if form.Resume != nil && form.Resume.Size == 0 && len(form.Resume.Bytes) == 0 {
		form.Resume = nil
	}

	// 1) local checks, no backend is contacted past here on failure
	fieldErrors := s.validateForm(form)
	resumeWarning := form.Resume != nil && resumeSize(form.Resume) > s.maxBytes

	if len(fieldErrors) > 0 {
		return dto.SubmissionResult{
			Status:        dto.SubmissionValidationError,
			Message:       errorSummary(fieldErrors),
			FieldErrors:   fieldErrors,
			ResumeWarning: resumeWarning,
		}
	}
	if resumeWarning {
		return dto.SubmissionResult{
			Status:        dto.SubmissionResumeWarning,
			Message:       msgResumeTooLarge,
			ResumeWarning: true,
		}
	}

	// 2) one submission in flight per email
	if s.guard != nil {
		key := utils.NormalizeEmail(form.Email)
		token, ok, err := s.guard.Acquire(ctx, key)
		if err != nil {
			log.Printf("[REGISTER] guard unavailable, continuing: %v", err)
		} else if !ok {
			return failure(msgInFlight, ErrSubmissionInFlight)
		} else {
			defer func() {
				if err := s.guard.Release(context.WithoutCancel(ctx), key, token); err != nil {
					log.Printf("[REGISTER] guard release %s: %v", key, err)
				}
			}()
		}
	}

	now := s.now()

	// 3) upload the resume first, its URL goes into the profile record
	var resumeURL, resumeKey *string
	if form.Resume != nil {
		key := helper.ResumeKey(form.FirstName, form.LastName, form.Resume.Filename, now)
		url, err := s.uploadResume(ctx, key, form.Resume.Bytes)
		if err != nil {
			log.Printf("[REGISTER] upload %s failed: %v", key, err)
			return failure(msgUploadFailed, fmt.Errorf("%w: %w", ErrUploadFailed, err))
		}
		resumeURL, resumeKey = &url, &key
	}

	// 4) profile record
	reg := &domain.Registration{
		PublicID:   uuid.New().String(),
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Phone:      form.Phone,
		Email:      form.Email,
		University: form.University,
		Program:    form.Program,
		ResumeURL:  resumeURL,
		ResumeKey:  resumeKey,
		CreatedAt:  now,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		if resumeKey != nil {
			// no compensation: the uploaded file stays in storage
			log.Printf("[REGISTER] profile write failed, orphaned resume %s/%s: %v", s.folder, *resumeKey, err)
		} else {
			log.Printf("[REGISTER] profile write failed: %v", err)
		}
		return failure(msgWriteFailed, fmt.Errorf("%w: %w", ErrProfileWriteFailed, err))
	}

	log.Printf("[REGISTER] registration %s stored (resume=%t)", reg.PublicID, resumeURL != nil)
	s.publishSubmitted(reg)

	resp := toRegistrationResponse(*reg)
	return dto.SubmissionResult{
		Status:       dto.SubmissionSuccess,
		Message:      msgSuccess,
		Registration: &resp,
	}
}

func (s *registrationService) ListRegistrations(ctx context.Context, limit, offset int) (*dto.RegistrationListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	rows, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	out := &dto.RegistrationListResponse{
		Total:         total,
		Registrations: make([]dto.RegistrationResponse, 0, len(rows)),
	}
	for _, r := range rows {
		out.Registrations = append(out.Registrations, toRegistrationResponse(r))
	}
	return out, nil
}

func (s *registrationService) uploadResume(ctx context.Context, key string, b []byte) (string, error) {
	if s.uploader == nil {
		return "", ErrUploaderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	return s.uploader.UploadBytes(ctx, s.folder, key, b)
}

func (s *registrationService) publishSubmitted(reg *domain.Registration) {
	if s.producer == nil {
		return
	}

	payload, err := json.Marshal(dto.RegistrationSubmittedEvent{
		PublicID:    reg.PublicID,
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		Phone:       reg.Phone,
		Email:       reg.Email,
		University:  reg.University,
		Program:     reg.Program,
		ResumeURL:   reg.ResumeURL,
		SubmittedAt: reg.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("[REGISTER] encode event: %v", err)
		return
	}

	if err := s.producer.PublishMessage([]byte(reg.PublicID), payload); err != nil {
		log.Printf("[REGISTER] publish %s: %v", reg.PublicID, err)
	}
}

func (s *registrationService) validateForm(form dto.RegistrationForm) map[string]bool {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		log.Printf("[REGISTER] validator: %v", err)
		return nil
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		for _, rf := range requiredFields {
			if fe.StructField() == rf.field {
				failed[rf.key] = true
			}
		}
	}
	return failed
}

func errorSummary(fieldErrors map[string]bool) string {
	labels := make([]string, 0, len(fieldErrors))
	for _, rf := range requiredFields {
		if fieldErrors[rf.key] {
			labels = append(labels, rf.label)
		}
	}
	return "Please fill in: " + strings.Join(labels, ", ") + "."
}

func failure(msg string, err error) dto.SubmissionResult {
	return dto.SubmissionResult{
		Status:  dto.SubmissionFailure,
		Message: msg,
		Err:     err,
	}
}

func trimForm(form dto.RegistrationForm) dto.RegistrationForm {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = strings.TrimSpace(form.Email)
	form.University = strings.TrimSpace(form.University)
	form.Program = strings.TrimSpace(form.Program)
	return form
}

func resumeSize(f *dto.ResumeFile) int64 {
	if n := int64(len(f.Bytes)); n > f.Size {
		return n
	}
	return f.Size
}

func toRegistrationResponse(r domain.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		PublicID:   r.PublicID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Phone:      r.Phone,
		Email:      r.Email,
		University: r.University,
		Program:    r.Program,
		ResumeURL:  r.ResumeURL,
		CreatedAt:  r.CreatedAt,
	}
}
