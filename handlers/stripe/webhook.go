package stripe

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// CreatorSubscriptionEvent is one payment-provider lifecycle fact, reduced to
// the fields this core applies. Replaying the same event is harmless: the
// application is an upsert keyed by the provider's subscription reference.
type CreatorSubscriptionEvent struct {
	SubscriptionRef   string
	CustomerRef       string
	CreatorID         string
	Status            models.CreatorSubscriptionStatus
	PeriodEnd         *time.Time
	CancelAtPeriodEnd bool
}

func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cannot read the request body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret is not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stripe signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		handleCheckoutSessionCompleted(c, event)
	case "customer.subscription.updated":
		handleSubscriptionUpdated(c, event)
	case "customer.subscription.deleted":
		handleSubscriptionDeleted(c, event)
	case "invoice.payment_failed":
		handleInvoicePaymentFailed(c, event)
	default:
		// Unknown event types are acknowledged, never fatal
		utils.LogInfo(fmt.Sprintf("Ignored Stripe event type %s in StripeWebhookHandler", event.Type))
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
	}
}

func handleCheckoutSessionCompleted(c *gin.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing CheckoutSession"})
		return
	}

	if session.Subscription == nil || session.Customer == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Checkout session without subscription"})
		return
	}

	evt := CreatorSubscriptionEvent{
		SubscriptionRef: session.Subscription.ID,
		CustomerRef:     session.Customer.ID,
		CreatorID:       session.ClientReferenceID,
		Status:          models.CreatorSubscriptionActive,
	}

	if err := ApplyCreatorSubscriptionEvent(evt); err != nil {
		utils.LogError(err, "Error applying checkout.session.completed in StripeWebhookHandler")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error applying subscription event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creator subscription activated"})
}

func handleSubscriptionUpdated(c *gin.Context, event stripe.Event) {
	evt, err := subscriptionEventFromRaw(event.Data.Raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing subscription"})
		return
	}

	if err := ApplyCreatorSubscriptionEvent(evt); err != nil {
		utils.LogError(err, "Error applying customer.subscription.updated in StripeWebhookHandler")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error applying subscription event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creator subscription updated"})
}

func handleSubscriptionDeleted(c *gin.Context, event stripe.Event) {
	evt, err := subscriptionEventFromRaw(event.Data.Raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing subscription"})
		return
	}
	evt.Status = models.CreatorSubscriptionCanceled

	if err := ApplyCreatorSubscriptionEvent(evt); err != nil {
		utils.LogError(err, "Error applying customer.subscription.deleted in StripeWebhookHandler")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error applying subscription event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creator subscription canceled"})
}

func handleInvoicePaymentFailed(c *gin.Context, event stripe.Event) {
	var invoiceData map[string]interface{}
	if err := json.Unmarshal(event.Data.Raw, &invoiceData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Invoice"})
		return
	}

	subscriptionRef := subscriptionRefFromInvoice(invoiceData)
	if subscriptionRef == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Invoice without subscription reference"})
		return
	}

	evt := CreatorSubscriptionEvent{
		SubscriptionRef: subscriptionRef,
		Status:          models.CreatorSubscriptionPastDue,
	}

	if err := ApplyCreatorSubscriptionEvent(evt); err != nil {
		utils.LogError(err, "Error applying invoice.payment_failed in StripeWebhookHandler")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error applying subscription event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creator subscription marked past due"})
}

// ApplyCreatorSubscriptionEvent upserts the creator subscription row keyed by
// the Stripe subscription reference. An unknown reference needs a creator,
// resolved from the event itself or from the Stripe customer reference.
func ApplyCreatorSubscriptionEvent(evt CreatorSubscriptionEvent) error {
	if evt.SubscriptionRef == "" {
		return fmt.Errorf("missing subscription reference")
	}

	var sub models.CreatorSubscription
	err := db.DB.First(&sub, "stripe_subscription_id = ?", evt.SubscriptionRef).Error
	if err == nil {
		updates := map[string]interface{}{
			"status":               evt.Status,
			"cancel_at_period_end": evt.CancelAtPeriodEnd,
		}
		if evt.PeriodEnd != nil {
			updates["current_period_end"] = evt.PeriodEnd
		}
		return db.DB.Model(&sub).Updates(updates).Error
	}

	creatorID := evt.CreatorID
	if creatorID == "" {
		if evt.CustomerRef == "" {
			return fmt.Errorf("cannot resolve creator for subscription %s", evt.SubscriptionRef)
		}
		var user models.User
		if err := db.DB.First(&user, "stripe_customer_id = ?", evt.CustomerRef).Error; err != nil {
			return fmt.Errorf("no user for Stripe customer %s", evt.CustomerRef)
		}
		creatorID = user.ID
	}

	sub = models.CreatorSubscription{
		CreatorID:            creatorID,
		StripeSubscriptionId: evt.SubscriptionRef,
		StripeCustomerId:     evt.CustomerRef,
		Status:               evt.Status,
		CurrentPeriodEnd:     evt.PeriodEnd,
		CancelAtPeriodEnd:    evt.CancelAtPeriodEnd,
	}
	return db.DB.Create(&sub).Error
}

// subscriptionEventFromRaw reads the fields this core needs from a raw
// subscription payload. The raw map keeps the handler independent of where
// the Stripe API version puts the period fields.
func subscriptionEventFromRaw(raw json.RawMessage) (CreatorSubscriptionEvent, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return CreatorSubscriptionEvent{}, err
	}

	evt := CreatorSubscriptionEvent{}

	if id, ok := data["id"].(string); ok {
		evt.SubscriptionRef = id
	}
	if cust, ok := data["customer"].(string); ok {
		evt.CustomerRef = cust
	}
	if cancel, ok := data["cancel_at_period_end"].(bool); ok {
		evt.CancelAtPeriodEnd = cancel
	}

	switch status, _ := data["status"].(string); status {
	case "active", "trialing":
		evt.Status = models.CreatorSubscriptionActive
	case "past_due", "unpaid":
		evt.Status = models.CreatorSubscriptionPastDue
	default:
		evt.Status = models.CreatorSubscriptionCanceled
	}

	if end, ok := data["current_period_end"].(float64); ok && end > 0 {
		t := time.Unix(int64(end), 0)
		evt.PeriodEnd = &t
	}

	return evt, nil
}

func subscriptionRefFromInvoice(invoiceData map[string]interface{}) string {
	if parent, ok := invoiceData["parent"].(map[string]interface{}); ok {
		if subDetails, ok := parent["subscription_details"].(map[string]interface{}); ok {
			if sub, ok := subDetails["subscription"].(string); ok && sub != "" {
				return sub
			}
		}
	}

	if v, ok := invoiceData["subscription"]; ok && v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}

	return ""
}
