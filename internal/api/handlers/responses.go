package handlers

import (
	"errors"
	"net/http"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"

	"github.com/labstack/echo/v4"
)

func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func crudError(c echo.Context, err error) error {
	return jsonError(c, crudStatusCode(err), err.Error())
}

func crudStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSaleFinalized):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
