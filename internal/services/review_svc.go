package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
)

// ReviewService lists the logged-in user's own reviews for the mypage.
type ReviewService interface {
	ListMine(ctx context.Context, sess *models.Session, req models.ReviewListReq) (*models.ReviewListRes, error)
}

type reviewServiceImpl struct {
	api       apiclient.Doer
	validator *validator.Validate
	log       *logrus.Logger
}

func NewReviewService(api apiclient.Doer, validator *validator.Validate, log *logrus.Logger) ReviewService {
	return &reviewServiceImpl{api: api, validator: validator, log: log}
}

func (s *reviewServiceImpl) ListMine(ctx context.Context, sess *models.Session, req models.ReviewListReq) (*models.ReviewListRes, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = 10
	}
	if req.Tab == "" {
		req.Tab = "written"
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	resp, err := doUpstream(ctx, s.api, sess, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/reviews/v1/me",
		Query: url.Values{
			"tab":   {req.Tab},
			"page":  {strconv.Itoa(req.Page)},
			"limit": {strconv.Itoa(req.Limit)},
		},
	})
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := apiclient.DecodeData(resp, &raw); err != nil {
		return nil, err
	}
	return decodeReviewPage(resp.Body, raw, req.Page, req.Limit)
}
