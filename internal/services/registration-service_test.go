package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ieeespac/spac_site/internal/domain"
	"github.com/ieeespac/spac_site/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadCall struct {
	folder   string
	filename string
	size     int
}

type fakeUploader struct {
	calls []uploadCall
	url   string
	err   error
}

func (f *fakeUploader) UploadBytes(_ context.Context, folder string, filename string, b []byte) (string, error) {
	f.calls = append(f.calls, uploadCall{folder: folder, filename: filename, size: len(b)})
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeRegistrationRepo struct {
	created []domain.Registration
	err     error
}

func (f *fakeRegistrationRepo) Create(_ context.Context, r *domain.Registration) error {
	if f.err != nil {
		return f.err
	}
	r.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *r)
	return nil
}

func (f *fakeRegistrationRepo) FindByPublicID(_ context.Context, publicID string) (*domain.Registration, error) {
	for i := range f.created {
		if f.created[i].PublicID == publicID {
			return &f.created[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRegistrationRepo) List(_ context.Context, limit, offset int) ([]domain.Registration, error) {
	if offset >= len(f.created) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.created) {
		end = len(f.created)
	}
	return f.created[offset:end], nil
}

func (f *fakeRegistrationRepo) Count(context.Context) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeProducer struct {
	keys     [][]byte
	messages [][]byte
	err      error
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.keys = append(f.keys, key)
	f.messages = append(f.messages, value)
	return f.err
}

type fakeGuard struct {
	mu       sync.Mutex
	held     map[string]bool
	issued   int
	released []string
	tokens   []string
}

func (g *fakeGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held == nil {
		g.held = map[string]bool{}
	}
	if g.held[key] {
		return "", false, nil
	}
	g.held[key] = true
	g.issued++
	return fmt.Sprintf("token-%d", g.issued), true, nil
}

func (g *fakeGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	g.released = append(g.released, key)
	g.tokens = append(g.tokens, token)
	return nil
}

var fixedNow = time.Date(2022, time.January, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRegistrationRepo, up *fakeUploader, prod *fakeProducer, guard *fakeGuard) RegistrationService {
	opts := RegistrationOptions{
		ResumeFolder:   "resumes",
		MaxResumeBytes: 1024,
		Now:            func() time.Time { return fixedNow },
	}
	// typed nils must not reach the service as non-nil interfaces
	var service RegistrationService
	switch {
	case prod == nil && guard == nil:
		service = NewRegistrationService(repo, up, nil, nil, opts)
	case prod == nil:
		service = NewRegistrationService(repo, up, nil, guard, opts)
	case guard == nil:
		service = NewRegistrationService(repo, up, prod, nil, opts)
	default:
		service = NewRegistrationService(repo, up, prod, guard, opts)
	}
	return service
}

func adaForm() dto.RegistrationForm {
	return dto.RegistrationForm{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		University: "X",
		Program:    "CS",
	}
}

func TestSubmitRequiredFieldsMissing(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.RegistrationForm)
		flagged []string
		summary string
	}{
		{
			name:    "first name",
			mutate:  func(f *dto.RegistrationForm) { f.FirstName = "" },
			flagged: []string{"first_name"},
			summary: "Please fill in: First Name.",
		},
		{
			name:    "last name blank",
			mutate:  func(f *dto.RegistrationForm) { f.LastName = "   " },
			flagged: []string{"last_name"},
			summary: "Please fill in: Last Name.",
		},
		{
			name: "email university program",
			mutate: func(f *dto.RegistrationForm) {
				f.Email, f.University, f.Program = "", "", "\t"
			},
			flagged: []string{"email", "university", "program"},
			summary: "Please fill in: Email Address, University, Program.",
		},
		{
			name:    "everything",
			mutate:  func(f *dto.RegistrationForm) { *f = dto.RegistrationForm{Phone: "555-0100"} },
			flagged: []string{"first_name", "last_name", "email", "university", "program"},
			summary: "Please fill in: First Name, Last Name, Email Address, University, Program.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, up := &fakeRegistrationRepo{}, &fakeUploader{url: "https://files/x"}
			svc := newTestService(repo, up, nil, nil)

			form := adaForm()
			form.Resume = &dto.ResumeFile{Filename: "cv.pdf", Size: 10, Bytes: make([]byte, 10)}
			tt.mutate(&form)

			res := svc.Submit(context.Background(), form)

			assert.Equal(t, dto.SubmissionValidationError, res.Status)
			assert.Equal(t, tt.summary, res.Message)
			assert.Len(t, res.FieldErrors, len(tt.flagged))
			for _, key := range tt.flagged {
				assert.True(t, res.FieldErrors[key], key)
			}
			assert.Empty(t, up.calls)
			assert.Empty(t, repo.created)
		})
	}
}

func TestSubmitWithoutFileSkipsUpload(t *testing.T) {
	repo, up, prod := &fakeRegistrationRepo{}, &fakeUploader{}, &fakeProducer{}
	svc := newTestService(repo, up, prod, nil)

	res := svc.Submit(context.Background(), adaForm())

	require.Equal(t, dto.SubmissionSuccess, res.Status)
	assert.Empty(t, up.calls)
	require.Len(t, repo.created, 1)

	got := repo.created[0]
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "X", got.University)
	assert.Equal(t, "CS", got.Program)
	assert.Nil(t, got.ResumeURL)
	assert.Nil(t, got.ResumeKey)
	assert.NotEmpty(t, got.PublicID)

	require.NotNil(t, res.Registration)
	assert.Equal(t, got.PublicID, res.Registration.PublicID)
	assert.Nil(t, res.Registration.ResumeURL)
}

func TestSubmitOversizeResume(t *testing.T) {
	tests := []struct {
		name   string
		form   func() dto.RegistrationForm
		status dto.SubmissionStatus
	}{
		{
			name:   "valid fields",
			form:   adaForm,
			status: dto.SubmissionResumeWarning,
		},
		{
			name: "invalid fields",
			form: func() dto.RegistrationForm {
				f := adaForm()
				f.Email = ""
				return f
			},
			status: dto.SubmissionValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, up := &fakeRegistrationRepo{}, &fakeUploader{url: "https://files/x"}
			svc := newTestService(repo, up, nil, nil)

			form := tt.form()
			form.Resume = &dto.ResumeFile{Filename: "huge.pdf", Size: 4096}

			res := svc.Submit(context.Background(), form)

			assert.Equal(t, tt.status, res.Status)
			assert.True(t, res.ResumeWarning)
			assert.Empty(t, up.calls)
			assert.Empty(t, repo.created)
		})
	}
}

func TestSubmitResumeAtThresholdIsAccepted(t *testing.T) {
	repo, up := &fakeRegistrationRepo{}, &fakeUploader{url: "https://files/ada.pdf"}
	svc := newTestService(repo, up, nil, nil)

	form := adaForm()
	form.Resume = &dto.ResumeFile{Filename: "ada.pdf", Size: 1024, Bytes: make([]byte, 1024)}

	res := svc.Submit(context.Background(), form)

	require.Equal(t, dto.SubmissionSuccess, res.Status)
	assert.False(t, res.ResumeWarning)
	require.Len(t, up.calls, 1)
	assert.Equal(t, "resumes", up.calls[0].folder)
	assert.Equal(t, "ada-lovelace-1641816000000.pdf", up.calls[0].filename)
	assert.Equal(t, 1024, up.calls[0].size)

	require.Len(t, repo.created, 1)
	require.NotNil(t, repo.created[0].ResumeURL)
	assert.Equal(t, "https://files/ada.pdf", *repo.created[0].ResumeURL)
	assert.Equal(t, "ada-lovelace-1641816000000.pdf", *repo.created[0].ResumeKey)
}

func TestSubmitUploadFailure(t *testing.T) {
	repo, up := &fakeRegistrationRepo{}, &fakeUploader{err: errors.New("storage down")}
	svc := newTestService(repo, up, nil, nil)

	form := adaForm()
	form.Resume = &dto.ResumeFile{Filename: "ada.pdf", Size: 3, Bytes: []byte("pdf")}

	res := svc.Submit(context.Background(), form)

	assert.Equal(t, dto.SubmissionFailure, res.Status)
	assert.ErrorIs(t, res.Err, ErrUploadFailed)
	assert.Len(t, up.calls, 1)
	assert.Empty(t, repo.created)
}

func TestSubmitProfileWriteFailureAfterUpload(t *testing.T) {
	repo := &fakeRegistrationRepo{err: errors.New("db down")}
	up, prod := &fakeUploader{url: "https://files/ada.pdf"}, &fakeProducer{}
	svc := newTestService(repo, up, prod, nil)

	form := adaForm()
	form.Resume = &dto.ResumeFile{Filename: "ada.pdf", Size: 3, Bytes: []byte("pdf")}

	res := svc.Submit(context.Background(), form)

	assert.Equal(t, dto.SubmissionFailure, res.Status)
	assert.NotEqual(t, dto.SubmissionSuccess, res.Status)
	assert.ErrorIs(t, res.Err, ErrProfileWriteFailed)
	assert.Len(t, up.calls, 1)
	assert.Empty(t, prod.messages)
}

func TestSubmitPublishesEvent(t *testing.T) {
	repo, up, prod := &fakeRegistrationRepo{}, &fakeUploader{}, &fakeProducer{err: errors.New("broker down")}
	svc := newTestService(repo, up, prod, nil)

	form := adaForm()
	form.Phone = " 555-0100 "
	res := svc.Submit(context.Background(), form)

	// a broker failure never changes the outcome
	require.Equal(t, dto.SubmissionSuccess, res.Status)
	require.Len(t, prod.messages, 1)

	var evt dto.RegistrationSubmittedEvent
	require.NoError(t, json.Unmarshal(prod.messages[0], &evt))
	assert.Equal(t, res.Registration.PublicID, evt.PublicID)
	assert.Equal(t, res.Registration.PublicID, string(prod.keys[0]))
	assert.Equal(t, "555-0100", evt.Phone)
	assert.Equal(t, "2022-01-10T12:00:00Z", evt.SubmittedAt)
}

func TestSubmitGuardRejectsInFlight(t *testing.T) {
	repo, up := &fakeRegistrationRepo{}, &fakeUploader{}
	guard := &fakeGuard{held: map[string]bool{"ada@example.com": true}}
	svc := newTestService(repo, up, nil, guard)

	form := adaForm()
	form.Email = " ADA@example.com "
	res := svc.Submit(context.Background(), form)

	assert.Equal(t, dto.SubmissionFailure, res.Status)
	assert.ErrorIs(t, res.Err, ErrSubmissionInFlight)
	assert.Empty(t, repo.created)
	assert.Empty(t, guard.released)
}

func TestSubmitGuardReleasedOnCompletion(t *testing.T) {
	repo, up := &fakeRegistrationRepo{err: errors.New("db down")}, &fakeUploader{}
	guard := &fakeGuard{}
	svc := newTestService(repo, up, nil, guard)

	res := svc.Submit(context.Background(), adaForm())
	assert.Equal(t, dto.SubmissionFailure, res.Status)
	assert.Equal(t, []string{"ada@example.com"}, guard.released)

	repo.err = nil
	res = svc.Submit(context.Background(), adaForm())
	assert.Equal(t, dto.SubmissionSuccess, res.Status)
	assert.Len(t, guard.released, 2)
	assert.Equal(t, []string{"token-1", "token-2"}, guard.tokens)
}

func TestSubmitEmptyResumeTreatedAsAbsent(t *testing.T) {
	repo, up := &fakeRegistrationRepo{}, &fakeUploader{}
	svc := newTestService(repo, up, nil, nil)

	form := adaForm()
	form.Resume = &dto.ResumeFile{}

	res := svc.Submit(context.Background(), form)

	assert.Equal(t, dto.SubmissionSuccess, res.Status)
	assert.Empty(t, up.calls)
}

func TestListRegistrations(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	svc := newTestService(repo, &fakeUploader{}, nil, nil)

	for _, name := range []string{"Ada", "Grace", "Katherine"} {
		form := adaForm()
		form.FirstName = name
		require.Equal(t, dto.SubmissionSuccess, svc.Submit(context.Background(), form).Status)
	}

	list, err := svc.ListRegistrations(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	require.Len(t, list.Registrations, 2)
	assert.Equal(t, "Grace", list.Registrations[0].FirstName)
	assert.Equal(t, "Katherine", list.Registrations[1].FirstName)
}
