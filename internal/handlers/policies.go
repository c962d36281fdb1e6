package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/campusvoice/policy-board/backend/internal/models"
)

type PolicyHandler struct {
	db *gorm.DB
}

func NewPolicyHandler(db *gorm.DB) *PolicyHandler {
	return &PolicyHandler{db: db}
}

// currentUserID reads the identity the auth middleware attached to the context.
func currentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// CreatePolicy creates a new policy proposal (PROTECTED - requires authentication)
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is missing"})
		return
	}

	var input models.CreatePolicyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	academicYear := input.AcademicYear
	if academicYear == 0 {
		academicYear = time.Now().UTC().Year()
	}

	policy := models.Policy{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		OwnerID:      owner,
		Date:         time.Unix(input.Date, 0).UTC(),
		Votes:        0,
		AcademicYear: academicYear,
	}

	if err := h.db.Create(&policy).Error; err != nil {
		logrus.WithError(err).Error("Error adding policy")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "policy": policy})
}

// GetPoliciesByAcademicYear groups all policies by academic year, most recent
// year first. Members keep insertion order within their group.
func (h *PolicyHandler) GetPoliciesByAcademicYear(c *gin.Context) {
	var policies []models.Policy
	if err := h.db.Order("academic_year DESC, id ASC").Find(&policies).Error; err != nil {
		logrus.WithError(err).Error("Error fetching policies by academic year")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	groups := []models.PolicyYearGroup{}
	for _, policy := range policies {
		if len(groups) == 0 || groups[len(groups)-1].AcademicYear != policy.AcademicYear {
			groups = append(groups, models.PolicyYearGroup{AcademicYear: policy.AcademicYear})
		}
		last := &groups[len(groups)-1]
		last.Policies = append(last.Policies, policy)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "policies": groups})
}

// UpvotePolicy records an upvote (PROTECTED - requires authentication)
func (h *PolicyHandler) UpvotePolicy(c *gin.Context) {
	h.vote(c, models.VoteTypeUp)
}

// DownvotePolicy records a downvote (PROTECTED - requires authentication)
func (h *PolicyHandler) DownvotePolicy(c *gin.Context) {
	h.vote(c, models.VoteTypeDown)
}

// vote inserts the ledger row and adjusts the policy's running counter inside
// one transaction. The existence check is the fast path; the composite unique
// index on (policy_id, user_id) is the backstop for concurrent double-votes,
// and a duplicate-key failure is the same AlreadyVoted condition.
func (h *PolicyHandler) vote(c *gin.Context, voteType string) {
	policyID, err := strconv.Atoi(c.Param("policyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid policy id"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is missing"})
		return
	}

	var existing models.Vote
	err = h.db.Where("policy_id = ? AND user_id = ?", policyID, userID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User has already voted"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("Error checking existing vote")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	delta := 1
	if voteType == models.VoteTypeDown {
		delta = -1
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		vote := models.Vote{
			PolicyID: policyID,
			UserID:   userID,
			VoteType: voteType,
		}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		return tx.Model(&models.Policy{}).
			Where("id = ?", policyID).
			UpdateColumn("votes", gorm.Expr("votes + ?", delta)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User has already voted"})
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"policy_id": policyID,
			"user_id":   userID,
		}).Error("Error recording vote")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetPolicyVotes recomputes both tallies from the vote ledger. This is the
// authoritative read path, independent of the cached policies.votes counter.
func (h *PolicyHandler) GetPolicyVotes(c *gin.Context) {
	policyID, err := strconv.Atoi(c.Param("policyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid policy id"})
		return
	}

	var upvotes, downvotes int64
	if err := h.db.Model(&models.Vote{}).
		Where("policy_id = ? AND vote_type = ?", policyID, models.VoteTypeUp).
		Count(&upvotes).Error; err != nil {
		logrus.WithError(err).Error("Error fetching policy votes")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	if err := h.db.Model(&models.Vote{}).
		Where("policy_id = ? AND vote_type = ?", policyID, models.VoteTypeDown).
		Count(&downvotes).Error; err != nil {
		logrus.WithError(err).Error("Error fetching policy votes")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"upvotes":   upvotes,
		"downvotes": downvotes,
	})
}
