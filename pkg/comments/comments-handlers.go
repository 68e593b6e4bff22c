package comments

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/auth"
	JSON "github.com/AndrewStevenDJ/ChefSphere/pkg/json-utilities"
	"github.com/AndrewStevenDJ/ChefSphere/pkg/rest"
)

func RegisterHandlers(engine rest.Engine, cr CommentRepository, ts auth.TokenService) {
	var authenticated = auth.Auth(ts)

	engine.Post("/recipes/:id/comments", addComment(cr), authenticated)
	engine.Get("/recipes/:id/comments", listComments(cr))
	engine.Delete("/comments/:id", deleteComment(cr), authenticated)
	engine.Post("/comments/:id/report", reportComment(cr), authenticated)
	engine.Put("/comments/:id/restore", restoreComment(cr), authenticated, auth.Admin())
}

func pathId(request *http.Request) string {
	return httprouter.ParamsFromContext(request.Context()).ByName("id")
}

func addComment(cr CommentRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		data, err := JSON.DecodeValidate[CommentData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		commentId, err := cr.Add(pathId(request), identity.UserId, data)
		switch {
		case errors.Is(err, ErrParentMissing):
			JSON.BadRequest(writer, "El comentario padre no existe en esta receta.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.Created(writer, struct {
				CommentId string `json:"commentId"`
			}{commentId}, "Comentario publicado.")
		}
	}
}

func listComments(cr CommentRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		list, err := cr.ListVisible(pathId(request))
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		JSON.Ok(writer, list)
	}
}

func deleteComment(cr CommentRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		var commentId = pathId(request)
		owner, err := cr.GetOwner(commentId)
		if errors.Is(err, ErrNotFound) {
			JSON.NotFound(writer, "Comentario no encontrado.")
			return
		}
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		if owner != identity.UserId && !identity.Role.IsAdmin() {
			JSON.Forbidden(writer, "No tienes permiso para eliminar este comentario.")
			return
		}

		if err = cr.SoftDelete(commentId); err != nil {
			JSON.InternalServerError(writer)
			return
		}
		JSON.OkMessage(writer, "Comentario eliminado.")
	}
}

func reportComment(cr CommentRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		data, err := JSON.DecodeValidate[ReportData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		switch err = cr.Report(pathId(request), identity.UserId, data.Reason); {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Comentario no encontrado.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.OkMessage(writer, "Comentario reportado. Será revisado por un moderador.")
		}
	}
}

func restoreComment(cr CommentRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		switch err := cr.Restore(pathId(request)); {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Comentario no encontrado.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.OkMessage(writer, "Comentario restaurado.")
		}
	}
}
