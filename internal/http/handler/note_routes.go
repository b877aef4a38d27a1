package handler

import (
	"net/http"
	"notestash/internal/contract"
	"notestash/internal/utils"
	"notestash/internal/utils/apierror"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	GetAllNotes(ownerID string) ([]*contract.NoteResponse, apierror.ErrorResponse)
	CreateNote(ownerID string, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(ownerID string, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	SoftDeleteNote(ownerID string, noteID int64) apierror.ErrorResponse
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	owner, cerr := utils.GetOwnerFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := n.NoteService.GetAllNotes(owner)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, notes)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	owner, cerr := utils.GetOwnerFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return c.JSON(http.StatusUnsupportedMediaType, apierror.InvalidMediaTypeError)
	}

	var req contract.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	note, apierr := n.NoteService.CreateNote(owner, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	owner, cerr := utils.GetOwnerFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseNoteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.UpdateNoteRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	note, apierr := n.NoteService.UpdateNote(owner, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	owner, cerr := utils.GetOwnerFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseNoteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := n.NoteService.SoftDeleteNote(owner, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &contract.OkResponse{OK: true})
}

func parseNoteID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
