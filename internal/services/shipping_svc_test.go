package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanjin5212/myfarm-storefront/internal/models"
	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

func validAddress() models.ShippingAddressReq {
	return models.ShippingAddressReq{
		RecipientName: "김농부",
		Phone:         "010-1234-5678",
		Address:       "강원도 평창군 감자로 1",
		IsDefault:     true,
	}
}

func TestShippingService(t *testing.T) {
	ctx := context.Background()
	log, _ := testDeps()
	api := newFakeAPI().
		on(http.MethodPost, "/shipping-addresses/v1", respondJSON(http.StatusCreated, `{"success":true,"data":{"id":"a1","recipient_name":"김농부","is_default":true}}`)).
		on(http.MethodGet, "/shipping-addresses/v1", respondJSON(http.StatusOK, `{"success":true,"data":{"total_count":1,"address":[{"id":"a1"}]}}`)).
		on(http.MethodGet, "/shipping-addresses/v1/a1", respondJSON(http.StatusOK, `{"success":true,"data":{"id":"a1"}}`)).
		on(http.MethodPut, "/shipping-addresses/v1/a1", respondJSON(http.StatusOK, `{"success":true,"data":{"id":"a1","memo":"문 앞"}}`)).
		on(http.MethodDelete, "/shipping-addresses/v1/a1", respondJSON(http.StatusOK, `{"success":true,"message":"삭제되었습니다."}`))
	svc := NewShippingService(api, testValidator, log)
	sess := &models.Session{UpstreamCookies: map[string]string{"JSESSIONID": "s"}}

	created, err := svc.Create(ctx, sess, validAddress())
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)
	assert.Equal(t, "s", api.lastCall(t).Cookies["JSESSIONID"])

	list, err := svc.List(ctx, sess, models.ShippingAddressListReq{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)
	assert.Equal(t, "0", api.lastCall(t).Query.Get("page"))
	assert.Equal(t, "10", api.lastCall(t).Query.Get("size"))

	_, err = svc.Get(ctx, sess, "a1")
	require.NoError(t, err)

	req := validAddress()
	req.Memo = "문 앞"
	updated, err := svc.Update(ctx, sess, "a1", req)
	require.NoError(t, err)
	assert.Equal(t, "문 앞", updated.Memo)

	deleted, err := svc.Delete(ctx, sess, "a1")
	require.NoError(t, err)
	assert.Equal(t, "삭제되었습니다.", deleted.Message)

	calls := api.callCount()
	bad := validAddress()
	bad.RecipientName = ""
	_, err = svc.Create(ctx, sess, bad)
	assert.Error(t, err)
	_, err = svc.Get(ctx, sess, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequestPayload)
	assert.Equal(t, calls, api.callCount())
}
