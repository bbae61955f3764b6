package email

import (
	"sync"

	"jobportal_backend/internal/models"
)

// MockProvider records messages instead of sending them. Used when email is
// disabled and in tests.
type MockProvider struct {
	mu   sync.Mutex
	Sent []*Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, email)
	return nil
}

func (p *MockProvider) SendInterviewInvite(to string, job *models.Job, details models.InterviewDetails) error {
	subject, body := interviewInvite(job, details)
	return p.Send(&Email{To: []string{to}, Subject: subject, Body: body})
}

func (p *MockProvider) SendStatusUpdate(to string, job *models.Job, status models.ApplicationStatus) error {
	subject, body := statusUpdate(job, status)
	return p.Send(&Email{To: []string{to}, Subject: subject, Body: body})
}

// Messages returns a copy of everything sent so far.
func (p *MockProvider) Messages() []*Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Email, len(p.Sent))
	copy(out, p.Sent)
	return out
}
