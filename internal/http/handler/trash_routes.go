package handler

import (
	"net/http"
	"notestash/internal/contract"
	"notestash/internal/utils"
	"notestash/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type TrashService interface {
	GetTrash(ownerID string) ([]*contract.TrashedNoteResponse, apierror.ErrorResponse)
	RestoreNote(ownerID string, trashID int64) (*contract.NoteResponse, apierror.ErrorResponse)
	PermanentDeleteNote(ownerID string, trashID int64) apierror.ErrorResponse
}

type DefaultTrashRoute struct {
	TrashService TrashService
}

func NewTrashDefault(trashService TrashService) *DefaultTrashRoute {
	return &DefaultTrashRoute{TrashService: trashService}
}

func (t *DefaultTrashRoute) GetTrash(c echo.Context) error {
	owner, cerr := utils.GetOwnerFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := t.TrashService.GetTrash(owner)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, notes)
}

func (t *DefaultTrashRoute) RestoreNote(c echo.Context) error {
	owner, cerr := utils.GetOwnerFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseNoteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	note, apierr := t.TrashService.RestoreNote(owner, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (t *DefaultTrashRoute) PermanentDeleteNote(c echo.Context) error {
	owner, cerr := utils.GetOwnerFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseNoteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := t.TrashService.PermanentDeleteNote(owner, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &contract.OkResponse{OK: true})
}
