package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"candidate_application/i18n"
	"candidate_application/metrics"
	"candidate_application/models"
	"candidate_application/settings"
)

// FormID identifies the candidate application form.
const FormID = "axl_form"

// Publisher receives an event for every stored submission.
type Publisher interface {
	Publish(ctx context.Context, event models.SubmissionEvent) error
}

type SubmitResult struct {
	SubmissionID string                      `json:"submissionId"`
	Record       models.CandidateApplication `json:"record"`
	Messages     []string                    `json:"messages"`
}

type ApplicationService struct {
	store      settings.Store
	namespace  string
	translator i18n.Translator
	publisher  Publisher
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

type Option func(*ApplicationService)

func WithPublisher(p Publisher) Option {
	return func(s *ApplicationService) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ApplicationService) { s.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *ApplicationService) { s.logger = l }
}

func NewApplicationService(store settings.Store, namespace string, translator i18n.Translator, opts ...Option) *ApplicationService {
	if translator == nil {
		translator = i18n.Identity{}
	}
	s := &ApplicationService{
		store:      store,
		namespace:  namespace,
		translator: translator,
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ApplicationService) Namespace() string { return s.namespace }

// Current returns the stored record, the last accepted submission.
func (s *ApplicationService) Current(ctx context.Context) (models.CandidateApplication, error) {
	cfg, err := settings.Load(ctx, s.store, s.namespace)
	if err != nil {
		return models.CandidateApplication{}, err
	}
	values := make(map[string]string, len(models.FieldOrder))
	for _, key := range models.FieldOrder {
		values[key] = cfg.Get(key)
	}
	return models.ApplicationFromValues(values), nil
}

// BuildForm describes the form fields with the stored record as defaults.
func (s *ApplicationService) BuildForm(ctx context.Context, locale string) (*models.FormDefinition, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRender()

	t := func(key string) string { return s.translator.Translate(locale, key) }

	return &models.FormDefinition{
		ID: FormID,
		Fields: []models.FormField{
			{Name: models.FieldName, Type: models.WidgetTextfield, Title: t(i18n.MsgTitleName), DefaultValue: current.Name, Required: true},
			{Name: models.FieldMail, Type: models.WidgetEmail, Title: t(i18n.MsgTitleMail), DefaultValue: current.Mail, Required: true},
			{Name: models.FieldNumber, Type: models.WidgetTel, Title: t(i18n.MsgTitleNumber), DefaultValue: current.Number},
			{Name: models.FieldDOB, Type: models.WidgetDate, Title: t(i18n.MsgTitleDOB), DefaultValue: current.DOB, Required: true},
			{
				Name:         models.FieldGender,
				Type:         models.WidgetSelect,
				Title:        t(i18n.MsgTitleGender),
				DefaultValue: current.Gender,
				Options: []models.FieldOption{
					{Value: "Female", Label: t(i18n.MsgFemale)},
					{Value: "Male", Label: t(i18n.MsgMale)},
				},
			},
			{
				Name:         models.FieldMessage,
				Type:         models.WidgetTextarea,
				Title:        t(i18n.MsgTitleMessage),
				DefaultValue: current.Message,
				Placeholder:  t(i18n.MsgPlaceholderMsg),
			},
			{
				Name:         models.FieldConfirmation,
				Type:         models.WidgetRadios,
				Title:        t(i18n.MsgTitleConfirmation),
				DefaultValue: current.Confirmation,
				Options: []models.FieldOption{
					{Value: "Yes", Label: t(i18n.MsgYes)},
					{Value: "No", Label: t(i18n.MsgNo)},
				},
			},
			{Name: models.FieldCopy, Type: models.WidgetCheckbox, Title: t(i18n.MsgTitleCopy), DefaultValue: current.CopyRequested()},
		},
		Actions: []models.FormAction{
			{Name: "submit", Type: models.WidgetSubmit, Value: t(i18n.MsgSave), ButtonType: "primary"},
		},
	}, nil
}

// Validate applies the phone length rule. Declarative field rules are checked
// by the HTTP layer's validator.
func (s *ApplicationService) Validate(app *models.CandidateApplication) error {
	if len(app.Number) < MinPhoneLength {
		return &PhoneTooShortError{Length: len(app.Number)}
	}
	return nil
}

// Reject counts a submission turned away before Submit, such as one failing
// the declarative field rules.
func (s *ApplicationService) Reject() {
	s.metrics.ObserveSubmission(metrics.ResultRejected)
}

// Submit validates app, writes all of its fields to the settings namespace and
// returns the messages to show the applicant. Nothing is written when
// validation fails.
//
// Only the phone length rule is enforced here. Required fields, email syntax,
// the date format and option values are the caller's job; the HTTP layer
// checks them with the echo validator before calling Submit.
func (s *ApplicationService) Submit(ctx context.Context, app *models.CandidateApplication, locale string) (*SubmitResult, error) {
	if err := s.Validate(app); err != nil {
		s.metrics.ObserveSubmission(metrics.ResultRejected)
		return nil, err
	}

	cfg, err := settings.Load(ctx, s.store, s.namespace)
	if err != nil {
		s.metrics.ObserveSubmission(metrics.ResultFailed)
		return nil, err
	}

	record := *app
	if record.Copy == nil {
		stored, _ := strconv.ParseBool(cfg.Get(models.FieldCopy))
		record.Copy = &stored
	}

	values := record.Values()
	for _, key := range models.FieldOrder {
		cfg.Set(key, values[key])
	}
	if err := cfg.Save(ctx); err != nil {
		s.metrics.ObserveSubmission(metrics.ResultFailed)
		return nil, fmt.Errorf("store application: %w", err)
	}
	s.metrics.ObserveSubmission(metrics.ResultAccepted)

	result := &SubmitResult{
		SubmissionID: uuid.New().String(),
		Record:       record,
		Messages:     s.messages(locale, record.Name, values),
	}

	log := s.logger.With().Str("submission_id", result.SubmissionID).Str("namespace", s.namespace).Logger()
	log.Info().Bool("copy_requested", record.CopyRequested()).Msg("application stored")

	if s.publisher != nil {
		event := models.SubmissionEvent{
			SubmissionID: result.SubmissionID,
			Namespace:    s.namespace,
			Application:  record,
			SubmittedAt:  s.now().Unix(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Warn().Err(err).Msg("failed to publish submission event")
		}
	}

	return result, nil
}

func (s *ApplicationService) messages(locale, name string, values map[string]string) []string {
	msgs := make([]string, 0, len(models.FieldOrder)+1)
	msgs = append(msgs, s.translator.Translate(locale, i18n.MsgSubmitted, name))
	for _, key := range models.FieldOrder {
		msgs = append(msgs, key+": "+values[key])
	}
	return msgs
}

// IsValidationError reports whether err rejected the submission rather than
// failing it.
func IsValidationError(err error) bool {
	var phoneErr *PhoneTooShortError
	return errors.As(err, &phoneErr)
}
