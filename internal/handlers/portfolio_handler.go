package handlers

import (
	"github.com/gin-gonic/gin"

	"trashapp/internal/portfolio"
	"trashapp/internal/response"
)

// PortfolioHandler serves the static portfolio dataset
type PortfolioHandler struct{}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler() *PortfolioHandler {
	return &PortfolioHandler{}
}

// Get returns the full portfolio payload
// @Summary     Full portfolio data
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} response.Envelope "Portfolio data"
// @Router      /portfolio [get]
func (h *PortfolioHandler) Get(c *gin.Context) {
	response.Success(c, portfolio.Full(), "Portfolio data retrieved successfully")
}

// Projects returns the project list
// @Summary     Portfolio projects
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} response.Envelope "Projects"
// @Router      /portfolio/projects [get]
func (h *PortfolioHandler) Projects(c *gin.Context) {
	response.Success(c, portfolio.Projects, "Portfolio projects retrieved successfully")
}

// ProjectByID returns one project
// @Summary     Portfolio project by ID
// @Tags        portfolio
// @Produce     json
// @Param       id path string true "Project ID"
// @Success     200 {object} response.Envelope "Project"
// @Failure     404 {object} response.ErrorEnvelope "Not found"
// @Router      /portfolio/projects/{id} [get]
func (h *PortfolioHandler) ProjectByID(c *gin.Context) {
	project := portfolio.ProjectByID(c.Param("id"))
	if project == nil {
		response.NotFound(c, "Project")
		return
	}
	response.Success(c, project, "Portfolio project retrieved successfully")
}

// Skills returns the skill list
// @Summary     Portfolio skills
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} response.Envelope "Skills"
// @Router      /portfolio/skills [get]
func (h *PortfolioHandler) Skills(c *gin.Context) {
	response.Success(c, portfolio.Skills, "Portfolio skills retrieved successfully")
}

// Services returns the service list
// @Summary     Portfolio services
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} response.Envelope "Services"
// @Router      /portfolio/services [get]
func (h *PortfolioHandler) Services(c *gin.Context) {
	response.Success(c, portfolio.Services, "Portfolio services retrieved successfully")
}

// Intro returns the introduction block
// @Summary     Portfolio intro
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} response.Envelope "Intro data"
// @Router      /portfolio/intro [get]
func (h *PortfolioHandler) Intro(c *gin.Context) {
	response.Success(c, portfolio.IntroData, "Portfolio intro data retrieved successfully")
}

// Contact returns the contact block
// @Summary     Portfolio contact config
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} response.Envelope "Contact config"
// @Router      /portfolio/contact [get]
func (h *PortfolioHandler) Contact(c *gin.Context) {
	response.Success(c, portfolio.ContactConfig, "Portfolio contact config retrieved successfully")
}

// LogoText returns the site wordmark
// @Summary     Portfolio logo text
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} response.Envelope "Logo text"
// @Router      /portfolio/logotext [get]
func (h *PortfolioHandler) LogoText(c *gin.Context) {
	response.Success(c, portfolio.LogoText, "Portfolio logo text retrieved successfully")
}

// Social returns the social profile links
// @Summary     Portfolio social profiles
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} response.Envelope "Social profiles"
// @Router      /portfolio/social [get]
func (h *PortfolioHandler) Social(c *gin.Context) {
	response.Success(c, portfolio.SocialProfiles, "Portfolio social profiles retrieved successfully")
}
