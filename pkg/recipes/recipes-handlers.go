package recipes

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AndrewStevenDJ/ChefSphere/pkg/auth"
	JSON "github.com/AndrewStevenDJ/ChefSphere/pkg/json-utilities"
	"github.com/AndrewStevenDJ/ChefSphere/pkg/rest"
)

func RegisterHandlers(engine rest.Engine, rr RecipeRepository, ts auth.TokenService) {
	var authenticated = auth.Auth(ts)

	engine.Get("/recipes", listRecipes(rr))
	engine.Get("/recipes/:id", getRecipe(rr), auth.Optional(ts))
	engine.Post("/recipes", addRecipe(rr), authenticated)
	engine.Put("/recipes/:id", updateRecipe(rr), authenticated)
	engine.Delete("/recipes/:id", deleteRecipe(rr), authenticated)
	engine.Put("/recipes/:id/restore", restoreRecipe(rr), authenticated)
	engine.Put("/recipes/:id/status", setStatus(rr), authenticated, auth.Admin())
	engine.Post("/recipes/:id/like", toggleLike(rr), authenticated)
	engine.Post("/recipes/:id/favorite", toggleFavorite(rr), authenticated)
	engine.Post("/recipes/:id/rate", rateRecipe(rr), authenticated)
}

func pathId(request *http.Request) string {
	return httprouter.ParamsFromContext(request.Context()).ByName("id")
}

func listRecipes(rr RecipeRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		filters, err := ParseFilters(request.URL.Query())
		if err != nil {
			JSON.BadRequest(writer, "Parámetros de paginación o filtrado inválidos.")
			return
		}

		previews, pagination, err := rr.GetRecipes(filters)
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		JSON.Paginated(writer, previews, pagination)
	}
}

func getRecipe(rr RecipeRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		recipe, err := rr.GetRecipe(pathId(request), auth.ViewerId(request))
		switch {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Receta no encontrada.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.Ok(writer, recipe)
		}
	}
}

func addRecipe(rr RecipeRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		data, err := JSON.DecodeValidate[RecipeData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		recipeId, err := rr.AddRecipe(data, identity.UserId)
		switch {
		case errors.Is(err, ErrDuplicateStep):
			JSON.BadRequest(writer, "Los números de paso deben ser únicos.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.Created(writer, struct {
				RecipeId string `json:"recipeId"`
			}{recipeId}, "Receta creada. Pendiente de revisión.")
		}
	}
}

func updateRecipe(rr RecipeRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		// editing is reserved to the recipe's authors; administrators moderate
		// through the status, delete and restore routes instead
		var recipeId = pathId(request)
		if !rr.CanEdit(recipeId, identity.UserId) {
			JSON.Forbidden(writer, "No tienes permiso para editar esta receta.")
			return
		}

		data, err := JSON.DecodeValidate[RecipeData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		switch err = rr.UpdateRecipe(recipeId, data); {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Receta no encontrada.")
		case errors.Is(err, ErrDuplicateStep):
			JSON.BadRequest(writer, "Los números de paso deben ser únicos.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.OkMessage(writer, "Receta actualizada. Pendiente de revisión.")
		}
	}
}

func deleteRecipe(rr RecipeRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		var recipeId = pathId(request)
		if !identity.Role.IsAdmin() && !rr.IsPrincipalAuthor(recipeId, identity.UserId) {
			JSON.Forbidden(writer, "No tienes permiso para eliminar esta receta.")
			return
		}

		switch err = rr.SoftDelete(recipeId); {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Receta no encontrada.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.OkMessage(writer, "Receta eliminada.")
		}
	}
}

func restoreRecipe(rr RecipeRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		var recipeId = pathId(request)
		if !identity.Role.IsAdmin() && !rr.IsPrincipalAuthor(recipeId, identity.UserId) {
			JSON.Forbidden(writer, "No tienes permiso para restaurar esta receta.")
			return
		}

		switch err = rr.Restore(recipeId); {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Receta no encontrada.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.OkMessage(writer, "Receta restaurada como borrador.")
		}
	}
}

func setStatus(rr RecipeRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		data, err := JSON.DecodeValidate[StatusData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		switch err = rr.SetStatus(pathId(request), identity.UserId, data); {
		case errors.Is(err, ErrNotFound):
			JSON.NotFound(writer, "Receta no encontrada.")
		case err != nil:
			JSON.InternalServerError(writer)
		default:
			JSON.OkMessage(writer, "Estado de la receta actualizado.")
		}
	}
}

func toggleLike(rr RecipeRepository) http.HandlerFunc {
	return toggleHandler(rr.ToggleLike, "Me gusta")
}

func toggleFavorite(rr RecipeRepository) http.HandlerFunc {
	return toggleHandler(rr.ToggleFavorite, "Favorito")
}

func toggleHandler(toggle func(recipeId, userId string) (string, error), subject string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		action, err := toggle(pathId(request), identity.UserId)
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		var message = subject + " registrado."
		if action == ActionRemoved {
			message = subject + " retirado."
		}
		JSON.OkAction(writer, action, message)
	}
}

func rateRecipe(rr RecipeRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		identity, err := auth.GetIdentity(request)
		if err != nil {
			JSON.Unauthorised(writer, "No autenticado. Token requerido.")
			return
		}

		data, err := JSON.DecodeValidate[RateData](request)
		if err != nil {
			JSON.ValidationError(writer, err)
			return
		}

		action, err := rr.Rate(pathId(request), identity.UserId, data.Score)
		if err != nil {
			JSON.InternalServerError(writer)
			return
		}

		if action == ActionCreated {
			JSON.CreatedAction(writer, action, "Valoración registrada.")
			return
		}
		JSON.OkAction(writer, action, "Valoración actualizada.")
	}
}
