// services/notification_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Fallback wording when a shop has no active template of its own.
var DefaultTemplates = map[string]string{
	models.NotificationConfirmation: "Hi [CustomerName], your booking at [ShopName] on [Date] ([Slot]) is confirmed. Booking no. [BookingNumber].",
	models.NotificationReminder:     "Hi [CustomerName], a reminder of your booking at [ShopName] [When] ([Slot]). See you soon!",
}

// MessageSender delivers a text message and returns the provider's id for it.
type MessageSender interface {
	Send(from, to, body string) (string, error)
}

type TwilioSender struct {
	client *twilio.RestClient
}

func NewTwilioSender(accountSID, authToken string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
	}
}

func (t *TwilioSender) Send(from, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

type NotificationService struct {
	db           *gorm.DB
	bookings     BookingStore
	sender       MessageSender
	smsFrom      string
	whatsAppFrom string
	now          func() time.Time
}

func NewNotificationService(db *gorm.DB, bookings BookingStore, sender MessageSender, smsFrom, whatsAppFrom string) *NotificationService {
	return &NotificationService{
		db:           db,
		bookings:     bookings,
		sender:       sender,
		smsFrom:      smsFrom,
		whatsAppFrom: whatsAppFrom,
		now:          time.Now,
	}
}

// StartScheduler runs the daily reminder job on the given cron schedule.
func (s *NotificationService) StartScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		s.SendDailyReminders(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", schedule, err)
	}
	c.Start()
	utils.GetLogger().Info("Reminder scheduler started", zap.String("schedule", schedule))
	return c, nil
}

// SendDailyReminders messages every customer with a live booking tomorrow.
func (s *NotificationService) SendDailyReminders(ctx context.Context) {
	logger := utils.GetLogger()
	logger.Info("Starting daily reminder processing...")

	tomorrow := utils.BeginningOfDay(s.now()).AddDate(0, 0, 1)
	bookings, err := s.bookings.ListForDate(ctx, tomorrow, models.BookingPending, models.BookingConfirmed)
	if err != nil {
		logger.Error("Failed to fetch tomorrow's bookings", zap.Error(err))
		return
	}

	shops := map[uuid.UUID]*models.Shop{}
	sent := 0
	for i := range bookings {
		b := &bookings[i]
		shop, ok := shops[b.ShopID]
		if !ok {
			shop, err = s.loadShop(ctx, b.ShopID)
			if err != nil {
				logger.Warn("Skipping reminders for shop", zap.String("shopId", b.ShopID.String()), zap.Error(err))
			}
			shops[b.ShopID] = shop
		}
		if shop == nil {
			continue
		}
		if err := s.notify(ctx, b, shop, models.NotificationReminder); err == nil {
			sent++
		}
	}

	logger.Info("Daily reminder processing completed",
		zap.Int("bookings", len(bookings)),
		zap.Int("sent", sent))
}

// SendBookingConfirmation messages the customer that their booking is confirmed.
func (s *NotificationService) SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) error {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	shop, err := s.loadShop(ctx, b.ShopID)
	if err != nil {
		return err
	}
	return s.notify(ctx, b, shop, models.NotificationConfirmation)
}

func (s *NotificationService) loadShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.WithContext(ctx).First(&shop, "id = ?", shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("load shop %s: %w", shopID, err)
	}
	return &shop, nil
}

func (s *NotificationService) template(ctx context.Context, shopID uuid.UUID, kind string) (string, *uuid.UUID) {
	var tmpl models.NotificationTemplate
	err := s.db.WithContext(ctx).
		Where("shop_id = ? AND type = ? AND is_active = true", shopID, kind).
		First(&tmpl).Error
	if err != nil {
		return DefaultTemplates[kind], nil
	}
	return tmpl.Message, &tmpl.ID
}

func (s *NotificationService) notify(ctx context.Context, b *models.Booking, shop *models.Shop, kind string) error {
	logger := utils.GetLogger()
	if !shop.SMSNotifications && !shop.WhatsAppNotifications {
		return nil
	}
	if b.Customer.Phone == "" {
		logger.Warn("Customer has no phone number", zap.String("bookingId", b.ID.String()))
		return errors.New("customer has no phone number")
	}

	channel, to, ok := ChooseChannel(b.Customer.Phone, shop.SMSNotifications, shop.WhatsAppNotifications)
	if !ok {
		logger.Info("No enabled channel reaches customer",
			zap.String("bookingId", b.ID.String()),
			zap.String("type", kind))
		return nil
	}

	body, templateID := s.template(ctx, shop.ID, kind)
	message := RenderMessage(body, b, shop.Name, s.now())

	from := s.smsFrom
	if channel == ChannelWhatsApp {
		from = "whatsapp:" + s.whatsAppFrom
	}

	sid, err := s.sender.Send(from, to, message)
	status := "sent"
	errorMsg := ""
	if err != nil {
		logger.Error("Failed to send message",
			zap.String("bookingId", b.ID.String()),
			zap.String("channel", channel),
			zap.Error(err))
		status = "failed"
		errorMsg = err.Error()
	} else {
		logger.Info("Message sent",
			zap.String("bookingId", b.ID.String()),
			zap.String("channel", channel),
			zap.String("sid", sid))
	}

	entry := models.NotificationLog{
		ShopID:       shop.ID,
		BookingID:    b.ID,
		CustomerID:   b.CustomerID,
		TemplateID:   templateID,
		Type:         kind,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       s.now(),
	}
	if dbErr := s.db.WithContext(ctx).Create(&entry).Error; dbErr != nil {
		logger.Error("Failed to log notification", zap.String("bookingId", b.ID.String()), zap.Error(dbErr))
	}
	return err
}

// RenderMessage fills a template's placeholders from the booking.
func RenderMessage(template string, b *models.Booking, shopName string, now time.Time) string {
	r := strings.NewReplacer(
		"[CustomerName]", b.Customer.Name,
		"[ShopName]", shopName,
		"[Date]", b.BookingDate.Format("02 Jan 2006"),
		"[When]", strings.ToLower(utils.RelativeDay(b.BookingDate, now)),
		"[Slot]", fmt.Sprintf("%s %s-%s", b.SlotLabel, b.SlotStart, b.SlotEnd),
		"[Services]", strings.Join(b.ServiceNames(), ", "),
		"[BookingNumber]", b.BookingNumber,
		"[Amount]", b.TotalPrice.String(),
	)
	return r.Replace(template)
}

// ChooseChannel picks WhatsApp for E.164 numbers when the shop allows it,
// SMS otherwise. It returns the channel and the address to send to, and
// false when none of the shop's enabled channels can reach the phone.
func ChooseChannel(phone string, sms, whatsApp bool) (string, string, bool) {
	if whatsApp && strings.HasPrefix(phone, "+") {
		return ChannelWhatsApp, "whatsapp:" + phone, true
	}
	if sms {
		return ChannelSMS, phone, true
	}
	return "", "", false
}
