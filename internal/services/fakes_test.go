package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
)

// In-memory fakes for the repository and provider interfaces. Tests seed
// them directly and inspect recorded calls.

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*models.Job
}

func newFakeJobRepo(jobs ...*models.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: make(map[uuid.UUID]*models.Job)}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, errs.NotFoundf("job %s", id)
	}
	return job, nil
}

func (r *fakeJobRepo) FindFull(id uuid.UUID) (*models.Job, error) {
	return r.FindByID(id)
}

func (r *fakeJobRepo) ListWithRequirements() ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, j := range r.jobs {
		if j.Requirements != nil && *j.Requirements != "" {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) Update(id uuid.UUID, updates map[string]interface{}) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, errs.NotFoundf("job %s", id)
	}
	if v, ok := updates["status"]; ok {
		job.Status = v.(models.JobStatus)
	}
	if v, ok := updates["date_closed"]; ok {
		if v == nil {
			job.DateClosed = nil
		} else {
			t := v.(time.Time)
			job.DateClosed = &t
		}
	}
	if v, ok := updates["title"]; ok {
		job.Title = v.(string)
	}
	if v, ok := updates["requirements"]; ok {
		s := v.(string)
		job.Requirements = &s
	}
	return job, nil
}

type fakeStepRepo struct {
	mu    sync.Mutex
	steps map[uuid.UUID]*models.RecruitmentStep
}

func newFakeStepRepo(steps ...*models.RecruitmentStep) *fakeStepRepo {
	r := &fakeStepRepo{steps: make(map[uuid.UUID]*models.RecruitmentStep)}
	for _, s := range steps {
		r.steps[s.ID] = s
	}
	return r
}

func (r *fakeStepRepo) Create(step *models.RecruitmentStep) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[step.ID] = step
	return nil
}

func (r *fakeStepRepo) FindByID(id uuid.UUID) (*models.RecruitmentStep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	step, ok := r.steps[id]
	if !ok {
		return nil, errs.NotFoundf("recruitment step %s", id)
	}
	return step, nil
}

func (r *fakeStepRepo) FindByJob(jobID uuid.UUID) ([]models.RecruitmentStep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RecruitmentStep
	for _, s := range r.steps {
		if s.JobID == jobID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStepRepo) CountByJob(jobID uuid.UUID) (int64, error) {
	steps, _ := r.FindByJob(jobID)
	return int64(len(steps)), nil
}

func (r *fakeStepRepo) Update(id uuid.UUID, updates map[string]interface{}) (*models.RecruitmentStep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	step, ok := r.steps[id]
	if !ok {
		return nil, errs.NotFoundf("recruitment step %s", id)
	}
	if v, ok := updates["step_type"]; ok {
		step.StepType = v.(models.StepType)
	}
	if v, ok := updates["step_order"]; ok {
		step.StepOrder = v.(int)
	}
	if v, ok := updates["content"]; ok {
		s := v.(string)
		step.Content = &s
	}
	if v, ok := updates["release_results"]; ok {
		step.ReleaseResults = v.(bool)
	}
	return step, nil
}

func (r *fakeStepRepo) Delete(id, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	step, ok := r.steps[id]
	if !ok || step.JobID != jobID {
		return errs.NotFoundf("recruitment step %s", id)
	}
	delete(r.steps, id)
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*models.Application
}

func newFakeApplicationRepo(apps ...*models.Application) *fakeApplicationRepo {
	r := &fakeApplicationRepo{apps: make(map[uuid.UUID]*models.Application)}
	for _, a := range apps {
		r.apps[a.ID] = a
	}
	return r
}

func (r *fakeApplicationRepo) Create(app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.UserID == app.UserID {
			return errs.ErrDuplicateApplication
		}
	}
	r.apps[app.ID] = app
	return nil
}

func (r *fakeApplicationRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, errs.NotFoundf("application %s", id)
	}
	return app, nil
}

func (r *fakeApplicationRepo) FindForScoring(id uuid.UUID) (*models.Application, error) {
	return r.FindByID(id)
}

func (r *fakeApplicationRepo) List(filter repositories.ApplicationFilter) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if filter.JobID != nil && a.JobID != *filter.JobID {
			continue
		}
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeApplicationRepo) Update(id uuid.UUID, updates map[string]interface{}) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, errs.NotFoundf("application %s", id)
	}
	if v, ok := updates["status"]; ok {
		app.Status = v.(models.ApplicationStatus)
	}
	if v, ok := updates["general_review"]; ok {
		s := v.(string)
		app.GeneralReview = &s
	}
	return app, nil
}

type fakeProgressRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.ApplicationProgress
}

func newFakeProgressRepo(rows ...*models.ApplicationProgress) *fakeProgressRepo {
	r := &fakeProgressRepo{rows: make(map[uuid.UUID]*models.ApplicationProgress)}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return r
}

func (r *fakeProgressRepo) FindByID(id uuid.UUID) (*models.ApplicationProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, errs.NotFoundf("progress %s", id)
	}
	return row, nil
}

func (r *fakeProgressRepo) FindByApplicationAndStep(applicationID, stepID uuid.UUID) (*models.ApplicationProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findByKeyLocked(applicationID, stepID), nil
}

func (r *fakeProgressRepo) findByKeyLocked(applicationID, stepID uuid.UUID) *models.ApplicationProgress {
	for _, row := range r.rows {
		if row.ApplicationID == applicationID && row.StepID == stepID {
			return row
		}
	}
	return nil
}

func (r *fakeProgressRepo) Upsert(applicationID, userID, stepID uuid.UUID, patch repositories.ProgressPatch) (*models.ApplicationProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.findByKeyLocked(applicationID, stepID)
	if row == nil {
		row = &models.ApplicationProgress{
			ID:            uuid.New(),
			ApplicationID: applicationID,
			UserID:        userID,
			StepID:        stepID,
			Status:        models.ProgressPending,
			CreatedAt:     time.Now(),
		}
		r.rows[row.ID] = row
	}
	if patch.Status != nil {
		row.Status = *patch.Status
	}
	if patch.Score != nil {
		row.Score = patch.Score
	}
	if patch.Review != nil {
		row.Review = patch.Review
	}
	row.UpdatedAt = time.Now()
	return row, nil
}

func (r *fakeProgressRepo) ListByApplication(applicationID uuid.UUID) ([]models.ApplicationProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ApplicationProgress
	for _, row := range r.rows {
		if row.ApplicationID == applicationID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) CountByStep(stepID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, row := range r.rows {
		if row.StepID == stepID {
			count++
		}
	}
	return count, nil
}

func (r *fakeProgressRepo) Update(id uuid.UUID, updates map[string]interface{}) (*models.ApplicationProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, errs.NotFoundf("progress %s", id)
	}
	if v, ok := updates["status"]; ok {
		row.Status = v.(models.ProgressStatus)
	}
	if v, ok := updates["score"]; ok {
		f := v.(float64)
		row.Score = &f
	}
	if v, ok := updates["review"]; ok {
		s := v.(string)
		row.Review = &s
	}
	return row, nil
}

type fakeGemini struct {
	mu            sync.Mutex
	response      string
	err           error
	embedding     []float32
	embedErr      error
	systemPrompts []string
	userPrompts   []string
}

func (g *fakeGemini) GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.systemPrompts = append(g.systemPrompts, systemPrompt)
	g.userPrompts = append(g.userPrompts, userPrompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if g.embedErr != nil {
		return nil, g.embedErr
	}
	if g.embedding != nil {
		return g.embedding, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeQdrant struct {
	mu       sync.Mutex
	results  []SearchResult
	upserts  int
	searches int
	deletes  int
	err      error
}

func (q *fakeQdrant) InitCollection() error { return q.err }

func (q *fakeQdrant) UpsertChunk(ctx context.Context, jobID string, chunkIndex int, text string, embedding []float32) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.upserts++
	return q.err
}

func (q *fakeQdrant) SearchJobContext(ctx context.Context, queryEmbedding []float32, jobID string, limit int) ([]SearchResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.searches++
	if q.err != nil {
		return nil, q.err
	}
	return q.results, nil
}

func (q *fakeQdrant) DeleteJob(ctx context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deletes++
	return q.err
}

type fakeVoice struct {
	mu          sync.Mutex
	assistantID string
	createErr   error
	created     []*AssistantConfig
	deleted     []string
}

func (v *fakeVoice) CreateAssistant(ctx context.Context, cfg *AssistantConfig) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.createErr != nil {
		return "", v.createErr
	}
	v.created = append(v.created, cfg)
	if v.assistantID != "" {
		return v.assistantID, nil
	}
	return "assistant-1", nil
}

func (v *fakeVoice) DeleteAssistant(ctx context.Context, assistantID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleted = append(v.deleted, assistantID)
	return nil
}
