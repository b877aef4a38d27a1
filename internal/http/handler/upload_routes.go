package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"notestash/internal/contract"
	"notestash/internal/utils"
	"notestash/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UploadService interface {
	UploadAttachment(ctx context.Context, fileHeader *multipart.FileHeader) (*contract.AttachmentPayload, apierror.ErrorResponse)
}

type DefaultUploadRoute struct {
	UploadService UploadService
}

func NewUploadDefault(uploadService UploadService) *DefaultUploadRoute {
	return &DefaultUploadRoute{UploadService: uploadService}
}

func (u *DefaultUploadRoute) UploadAttachment(c echo.Context) error {
	if _, cerr := utils.GetOwnerFromContext(c); cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingFileError)
	}

	ref, apierr := u.UploadService.UploadAttachment(c.Request().Context(), fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, ref)
}
