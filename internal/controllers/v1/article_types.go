package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/shopspring/decimal"
)

type ArticleEditable struct {
	Reference   string          `json:"reference" example:"HNG-L-40"` // Unique reference of the article
	Name        string          `json:"name" example:"Hinge, left"`   // Name of the article
	TimePerUnit decimal.Decimal `json:"timePerUnit" example:"0.25"`   // Theoretical hours to produce one unit
}

func (editable ArticleEditable) model() models.Article {
	return models.Article{
		Reference:   editable.Reference,
		Name:        editable.Name,
		TimePerUnit: editable.TimePerUnit,
	}
}

type ArticleLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/articles/51c8b5f4-6b59-44a8-a0b4-5e0f6f7a0a1c"`         // The article itself
	Orders string `json:"orders" example:"https://example.com/api/v1/orders?article=51c8b5f4-6b59-44a8-a0b4-5e0f6f7a0a1c"` // Orders for the article
}

// Article is the API representation of an Article.
type Article struct {
	models.DefaultModel
	ArticleEditable
	Links ArticleLinks `json:"links"`
}

func newArticle(c *gin.Context, model models.Article) Article {
	url := c.GetString(string(models.DBContextURL))

	return Article{
		DefaultModel: model.DefaultModel,
		ArticleEditable: ArticleEditable{
			Reference:   model.Reference,
			Name:        model.Name,
			TimePerUnit: model.TimePerUnit,
		},
		Links: ArticleLinks{
			Self:   fmt.Sprintf("%s/v1/articles/%s", url, model.ID),
			Orders: fmt.Sprintf("%s/v1/orders?article=%s", url, model.ID),
		},
	}
}

type ArticleListResponse struct {
	Data       []Article   `json:"data"`                                                          // List of articles
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ArticleCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ArticleResponse `json:"data"`                                                          // List of created articles
}

func (a *ArticleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, ArticleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ArticleResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this article
	Data  *Article `json:"data"`                                                          // The article data, if creation was successful
}

// ArticleQueryFilter contains the fields that articles can be filtered with.
type ArticleQueryFilter struct {
	Reference string `form:"reference"`                  // By reference
	Name      string `form:"name" filterField:"false"`   // By name, case insensitive substring match
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first article returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of articles to return. Defaults to 50.
}

func (f ArticleQueryFilter) model() models.Article {
	return models.Article{
		Reference: f.Reference,
	}
}
