package face

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"go-timeclock/internal/employee"
	faceerrors "go-timeclock/internal/face/errors"
	"go-timeclock/internal/shared/apperror"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// TenantResolver is the slice of the tenant router this service needs.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantCode string) (*gorm.DB, error)
}

//go:generate mockgen -source=face_service.go -destination=mock/face_service_mock.go -package=mock
type Service interface {
	Enroll(ctx context.Context, tenantCode, employeeNo string, req EnrollRequest) (EnrollResponse, error)
	Authenticate(ctx context.Context, tenantCode, employeeNo string, req AuthenticateRequest) (AuthenticateResponse, error)
	AuthenticateLive(ctx context.Context, tenantCode, employeeNo string, req AuthenticateLiveRequest) (AuthenticateLiveResponse, error)
}

type service struct {
	cfg       Config
	tenants   TenantResolver
	directory employee.Directory
	repo      Repository
	extractor Extractor
	nowFn     func() time.Time
	logger    *zap.Logger
}

func NewService(
	cfg Config,
	tenants TenantResolver,
	directory employee.Directory,
	repo Repository,
	extractor Extractor,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("face.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("face.service")
	}
	return &service{
		cfg:       cfg,
		tenants:   tenants,
		directory: directory,
		repo:      repo,
		extractor: extractor,
		nowFn:     func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

var errBadImageEncoding = apperror.New(
	apperror.CodeInvalidInput,
	"Image must be base64 encoded",
	http.StatusBadRequest,
)

// extractOne runs detection under the configured timeout and applies the
// quality gates in their fixed order: face count, confidence, box size.
func (s *service) extractOne(ctx context.Context, imageB64 string) (*Detection, error) {
	image, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return nil, errBadImageEncoding
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ExtractTimeout)
	defer cancel()

	dets, err := s.extractor.Detect(ctx, image)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, faceerrors.ErrExtractionTimeout
		}
		return nil, err
	}

	switch {
	case len(dets) == 0:
		return nil, faceerrors.ErrNoFaceDetected
	case len(dets) > 1:
		return nil, faceerrors.ErrMultipleFaces
	}

	det := dets[0]
	if det.Confidence < s.cfg.DetectConfidence {
		return nil, faceerrors.ErrLowConfidence
	}
	if det.BoxRatio < s.cfg.MinBoxRatio || det.BoxRatio > s.cfg.MaxBoxRatio {
		return nil, faceerrors.ErrBadFaceSize
	}
	return &det, nil
}

func (s *service) Enroll(ctx context.Context, tenantCode, employeeNo string, req EnrollRequest) (EnrollResponse, error) {
	if req.EmployeeNo != "" {
		employeeNo = req.EmployeeNo
	}

	db, err := s.tenants.Resolve(ctx, tenantCode)
	if err != nil {
		return EnrollResponse{}, err
	}
	emp, err := s.directory.Resolve(ctx, db, employeeNo)
	if err != nil {
		return EnrollResponse{}, err
	}

	det, err := s.extractOne(ctx, req.Image)
	if err != nil {
		return EnrollResponse{}, err
	}

	tpl, err := newTemplate(emp.ID, det.Descriptor, s.nowFn())
	if err != nil {
		return EnrollResponse{}, err
	}
	if err := s.repo.Save(ctx, db, tpl); err != nil {
		return EnrollResponse{}, err
	}

	s.logger.Info("face enrolled",
		zap.String("employee_id", emp.ID.String()),
		zap.Int("descriptor_length", len(det.Descriptor)),
	)

	return EnrollResponse{
		Enrolled:   true,
		Length:     len(det.Descriptor),
		Confidence: det.Confidence,
	}, nil
}

// loadEnrolled fetches and validates the stored descriptor for the employee.
func (s *service) loadEnrolled(ctx context.Context, db *gorm.DB, emp *employee.Employee) (Descriptor, error) {
	tpl, err := s.repo.FindByEmployee(ctx, db, emp.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faceerrors.ErrNotEnrolled
		}
		return nil, err
	}
	stored, err := tpl.Vector()
	if err != nil {
		s.logger.Error("stored descriptor rejected",
			zap.String("employee_id", emp.ID.String()),
			zap.Error(err),
		)
		return nil, faceerrors.ErrMalformedDescriptor
	}
	return stored, nil
}

func (s *service) Authenticate(ctx context.Context, tenantCode, employeeNo string, req AuthenticateRequest) (AuthenticateResponse, error) {
	db, err := s.tenants.Resolve(ctx, tenantCode)
	if err != nil {
		return AuthenticateResponse{}, err
	}
	emp, err := s.directory.Resolve(ctx, db, employeeNo)
	if err != nil {
		return AuthenticateResponse{}, err
	}

	stored, err := s.loadEnrolled(ctx, db, emp)
	if err != nil {
		return AuthenticateResponse{}, err
	}

	det, err := s.extractOne(ctx, req.Image)
	if err != nil {
		return AuthenticateResponse{}, err
	}

	res, err := Match(stored, det.Descriptor, s.cfg.MatchThreshold)
	if err != nil {
		return AuthenticateResponse{}, err
	}

	return AuthenticateResponse{
		Authenticated: res.IsMatch,
		Distance:      res.Distance,
		Confidence:    res.Confidence,
	}, nil
}

func (s *service) AuthenticateLive(ctx context.Context, tenantCode, employeeNo string, req AuthenticateLiveRequest) (AuthenticateLiveResponse, error) {
	db, err := s.tenants.Resolve(ctx, tenantCode)
	if err != nil {
		return AuthenticateLiveResponse{}, err
	}
	emp, err := s.directory.Resolve(ctx, db, employeeNo)
	if err != nil {
		return AuthenticateLiveResponse{}, err
	}

	stored, err := s.loadEnrolled(ctx, db, emp)
	if err != nil {
		return AuthenticateLiveResponse{}, err
	}

	// The three extractions are independent CPU work; run them
	// concurrently and join before classification. Any gate failure wins.
	frames := []string{req.Frame1, req.Frame2, req.Frame3}
	descs := make([]Descriptor, len(frames))

	g, gctx := errgroup.WithContext(ctx)
	for i, frame := range frames {
		i, frame := i, frame
		g.Go(func() error {
			det, err := s.extractOne(gctx, frame)
			if err != nil {
				return err
			}
			descs[i] = det.Descriptor
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AuthenticateLiveResponse{}, err
	}

	result, avgDist, err := AssessLiveness(descs, s.cfg.LivenessMinDist, s.cfg.LivenessMaxDist)
	if err != nil {
		return AuthenticateLiveResponse{}, err
	}
	switch result {
	case StaticImageSuspected:
		return AuthenticateLiveResponse{}, faceerrors.ErrStaticImageSuspected
	case InconsistentSuspected:
		return AuthenticateLiveResponse{}, faceerrors.ErrInconsistentSuspected
	}

	// Identity check runs on the mean of the three frames, not any single
	// one.
	mean, err := MeanDescriptor(descs)
	if err != nil {
		return AuthenticateLiveResponse{}, err
	}
	res, err := Match(stored, mean, s.cfg.MatchThreshold)
	if err != nil {
		return AuthenticateLiveResponse{}, err
	}

	return AuthenticateLiveResponse{
		Authenticated: res.IsMatch,
		Distance:      res.Distance,
		Confidence:    res.Confidence,
		LivenessCheck: string(result),
		AvgFrameDist:  avgDist,
	}, nil
}
