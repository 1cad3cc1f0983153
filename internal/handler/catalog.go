package handler

import (
	"net/http"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// CreatureView is one creature level as listed to clients
type CreatureView struct {
	Level           int                   `json:"level"`
	Name            string                `json:"name"`
	Production      domain.ResourceBundle `json:"production"`
	IntervalSeconds int64                 `json:"intervalSeconds"`
}

// FamilyView is one creature family with its levels
type FamilyView struct {
	Family string         `json:"family"`
	Levels []CreatureView `json:"levels"`
}

// CatalogResponse lists creature families
type CatalogResponse struct {
	Families []FamilyView `json:"families"`
}

// QueryParamLang selects the localized creature names
const QueryParamLang = "lang"

// HandleGetCreatures lists every creature family and level
// @Summary List creatures
// @Tags catalog
// @Produce json
// @Param lang query string false "Language code (en, ru)"
// @Success 200 {object} CatalogResponse
// @Router /api/v1/catalog/creatures [get]
func HandleGetCreatures(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := GetOptionalQueryParam(r, QueryParamLang, "en")

		families := cat.Families()
		resp := CatalogResponse{Families: make([]FamilyView, 0, len(families))}
		for _, f := range families {
			view := FamilyView{Family: f.ID, Levels: make([]CreatureView, 0, len(f.Levels))}
			for _, def := range f.Levels {
				view.Levels = append(view.Levels, CreatureView{
					Level:           def.Level,
					Name:            def.Name(lang),
					Production:      def.Production,
					IntervalSeconds: def.IntervalSeconds,
				})
			}
			resp.Families = append(resp.Families, view)
		}

		respondJSON(w, http.StatusOK, resp)
	}
}
