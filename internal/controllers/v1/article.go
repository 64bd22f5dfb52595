package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/opsconsole/planning-backend/internal/httputil"
	"github.com/opsconsole/planning-backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterArticleRoutes registers the routes for articles with
// the RouterGroup that is passed.
func (co Controller) RegisterArticleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsArticleList)
		r.GET("", GetArticles)
		r.POST("", CreateArticles)
	}

	// Article with ID
	{
		r.OPTIONS("/:id", OptionsArticleDetail)
		r.GET("/:id", GetArticle)
		r.PATCH("/:id", UpdateArticle)
		r.DELETE("/:id", DeleteArticle)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Articles
// @Success		204
// @Router			/v1/articles [options]
func OptionsArticleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Articles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/articles/{id} [options]
func OptionsArticleDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Article{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create articles
// @Description	Creates articles from the list of submitted article data. The response code is the highest response code number that a single article creation would have caused. If it is not equal to 201, at least one article has an error.
// @Tags			Articles
// @Produce		json
// @Success		201			{object}	ArticleCreateResponse
// @Failure		400			{object}	ArticleCreateResponse
// @Failure		500			{object}	ArticleCreateResponse
// @Param			articles	body		[]ArticleEditable	true	"Articles"
// @Router			/v1/articles [post]
func CreateArticles(c *gin.Context) {
	var articles []ArticleEditable

	err := httputil.BindData(c, &articles)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ArticleCreateResponse{}

	for _, editable := range articles {
		article := editable.model()

		err = models.DB.Create(&article).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newArticle(c, article)
		r.Data = append(r.Data, ArticleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get articles
// @Description	Returns a list of articles
// @Tags			Articles
// @Produce		json
// @Success		200			{object}	ArticleListResponse
// @Failure		400			{object}	ArticleListResponse
// @Failure		500			{object}	ArticleListResponse
// @Param			reference	query		string	false	"Filter by reference"
// @Param			name		query		string	false	"Filter by name"
// @Param			offset		query		uint	false	"The offset of the first article returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of articles to return. Defaults to 50."
// @Router			/v1/articles [get]
func GetArticles(c *gin.Context) {
	var filter ArticleQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, ArticleListResponse{
			Error: &s,
		})
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.
		Order("reference ASC").
		Where(&model, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var articles []models.Article
	err := q.Find(&articles).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleListResponse{Error: &e})
		return
	}

	data := make([]Article, 0)
	for _, article := range articles {
		data = append(data, newArticle(c, article))
	}

	c.JSON(http.StatusOK, ArticleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get article
// @Description	Returns a specific article
// @Tags			Articles
// @Produce		json
// @Success		200	{object}	ArticleResponse
// @Failure		400	{object}	ArticleResponse
// @Failure		404	{object}	ArticleResponse
// @Failure		500	{object}	ArticleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/articles/{id} [get]
func GetArticle(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleResponse{Error: &e})
		return
	}

	var article models.Article
	err = models.DB.First(&article, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleResponse{Error: &e})
		return
	}

	data := newArticle(c, article)
	c.JSON(http.StatusOK, ArticleResponse{Data: &data})
}

// @Summary		Update article
// @Description	Update an article. Only values to be updated need to be specified.
// @Tags			Articles
// @Accept			json
// @Produce		json
// @Success		200		{object}	ArticleResponse
// @Failure		400		{object}	ArticleResponse
// @Failure		404		{object}	ArticleResponse
// @Failure		500		{object}	ArticleResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			article	body		ArticleEditable	true	"Article"
// @Router			/v1/articles/{id} [patch]
func UpdateArticle(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleResponse{Error: &e})
		return
	}

	var article models.Article
	err = models.DB.First(&article, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ArticleEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleResponse{Error: &e})
		return
	}

	var data ArticleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleResponse{Error: &e})
		return
	}

	if slices.Contains(updateFields, "Reference") && strings.TrimSpace(data.Reference) == "" {
		e := models.ErrArticleReferenceEmpty.Error()
		c.JSON(http.StatusBadRequest, ArticleResponse{Error: &e})
		return
	}

	err = models.DB.Model(&article).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArticleResponse{Error: &e})
		return
	}

	apiResource := newArticle(c, article)
	c.JSON(http.StatusOK, ArticleResponse{Data: &apiResource})
}

// @Summary		Delete article
// @Description	Deletes an article. Articles that orders refer to cannot be deleted.
// @Tags			Articles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/articles/{id} [delete]
func DeleteArticle(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var article models.Article
	err = models.DB.First(&article, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&article).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
