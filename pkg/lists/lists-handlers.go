package lists

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/auth"
	JSON "github.com/AndrewStevenDJ/ChefSphere/pkg/json-utilities"
	"github.com/AndrewStevenDJ/ChefSphere/pkg/recipes"
	"github.com/AndrewStevenDJ/ChefSphere/pkg/rest"
)

func RegisterHandlers(engine rest.Engine, lr ListRepository, ts auth.TokenService) {
	var authenticated = auth.Auth(ts)

	engine.Post("/lists", addList(lr), authenticated)
	engine.Get("/lists", getLists(lr), authenticated)
	engine.Delete("/lists/:listId", deleteList(lr), authenticated)
	engine.Post("/lists/:listId/recipes/:recipeId", toggleRecipe(lr), authenticated)
}

func addList(lr ListRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		data, err := JSON.DecodeValidate[ListData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		listId, err := lr.Add(identity.UserId, data)
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		JSON.Created(writer, struct {
			ListId string `json:"listId"`
		}{listId}, "Lista creada con éxito.")
	}
}

func getLists(lr ListRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		userLists, err := lr.GetByUser(identity.UserId)
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		JSON.Ok(writer, userLists)
	}
}

func deleteList(lr ListRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		var listId = httprouter.ParamsFromContext(request.Context()).ByName("listId")
		if !lr.Owns(listId, identity.UserId) {
			JSON.Forbidden(writer, "Acceso denegado. La lista no existe o no te pertenece.")
			return
		}

		switch err = lr.Delete(listId); {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Lista no encontrada.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.OkMessage(writer, "Lista eliminada.")
		}
	}
}

func toggleRecipe(lr ListRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		var params = httprouter.ParamsFromContext(request.Context())
		var listId = params.ByName("listId")
		if !lr.Owns(listId, identity.UserId) {
			JSON.Forbidden(writer, "Acceso denegado. La lista no existe o no te pertenece.")
			return
		}

		action, err := lr.ToggleRecipe(listId, params.ByName("recipeId"))
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		var message = "Receta añadida a la lista."
		if action == recipes.ActionRemoved {
			message = "Receta retirada de la lista."
		}
		JSON.OkAction(writer, action, message)
	}
}
