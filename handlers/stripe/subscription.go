package stripe

import (
	"net/http"
	"os"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	session "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
)

// CreateCreatorCheckoutSession starts a Stripe payment for the creator's own
// platform-access subscription. Returns the Stripe session ID and URL.
// @Summary Create a Stripe Checkout session for the platform subscription
// @Description Start a Stripe payment for the calling creator's platform subscription
// @Tags creator-subscription
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId: ID of the Stripe Checkout session, url: Stripe Checkout URL"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /payments/create-creator-subscription [post]
func CreateCreatorCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreateCreatorCheckoutSession")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreateCreatorCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if creator.StripeCustomerId != "" {
		// Make sure the customer still exists on Stripe
		if _, err := customer.Get(creator.StripeCustomerId, nil); err != nil {
			creator.StripeCustomerId = ""
		}
	}
	if creator.StripeCustomerId == "" {
		custParams := &stripe.CustomerParams{
			Email: stripe.String(creator.Email),
		}
		cust, err := customer.New(custParams)
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer in CreateCreatorCheckoutSession")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
			return
		}
		db.DB.Model(&creator).Update("stripe_customer_id", cust.ID)
		creator.StripeCustomerId = cust.ID
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(creator.StripeCustomerId),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(os.Getenv("STRIPE_CREATOR_PRICE_ID")),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(frontendURL + "/creator/subscription/success"),
		CancelURL:         stripe.String(frontendURL + "/creator/subscription/cancel"),
		ClientReferenceID: stripe.String(creator.ID),
	}

	s, err := session.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe session in CreateCreatorCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe session"})
		return
	}

	utils.LogSuccessWithUser(userID, "Creator subscription checkout session created in CreateCreatorCheckoutSession")
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}

// @Summary Get the creator platform subscription status
// @Description Return the calling creator's platform subscription, if any
// @Tags creator-subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "status: none|active|past_due|canceled"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /payments/creator-subscription-status [get]
func GetCreatorSubscriptionStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var sub models.CreatorSubscription
	err := db.DB.Where("creator_id = ?", userID).Order("created_at DESC").First(&sub).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "none"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            sub.Status,
		"currentPeriodEnd":  sub.CurrentPeriodEnd,
		"cancelAtPeriodEnd": sub.CancelAtPeriodEnd,
	})
}
