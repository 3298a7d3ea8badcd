package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/LearnGrowCode/water-timeout-backend/models"
	"github.com/LearnGrowCode/water-timeout-backend/storage"
)

// PushService delivers fired reminders to registered devices through SNS
// platform endpoints. The device registry lives in the same key-value store
// as the ledger. Without a platform ARN the service degrades to a no-op,
// which is the backend analogue of a denied notification permission.
type PushService struct {
	store       storage.Store
	sns         *awssns.Client
	platformArn string

	mu      sync.Mutex
	devices []models.Device
}

func NewPushService(store storage.Store) (*PushService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		store:       store,
		sns:         awssns.NewFromConfig(cfg),
		platformArn: os.Getenv("SNS_PLATFORM_ARN"),
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform"` // "android" | "ios"
	Token    string `json:"token"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// LoadDevices restores the registry from the store. Failures degrade to an
// empty registry.
func (p *PushService) LoadDevices(ctx context.Context) {
	raw, found, err := p.store.Get(ctx, models.DevicesKey)
	if err != nil {
		log.Printf("[push] failed to load devices: %v", err)
		return
	}
	if !found {
		return
	}
	var devices []models.Device
	if err := json.Unmarshal([]byte(raw), &devices); err != nil {
		log.Printf("[push] malformed device registry: %v", err)
		return
	}
	p.mu.Lock()
	p.devices = devices
	p.mu.Unlock()
}

// RegisterDevice creates (or refreshes) an SNS endpoint for the token and
// persists the registry.
func (p *PushService) RegisterDevice(ctx context.Context, platform, token string) (*models.Device, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
	default:
		return nil, errors.New("unknown platform")
	}
	if p.platformArn == "" {
		return nil, errors.New("SNS_PLATFORM_ARN not set")
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	hash := tokenHash(token)
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.devices {
		if p.devices[i].TokenHash == hash {
			p.devices[i].EndpointARN = aws.ToString(out.EndpointArn)
			p.devices[i].Platform = strings.ToLower(platform)
			p.devices[i].UpdatedAt = time.Now()
			p.saveLocked(ctx)
			return &p.devices[i], nil
		}
	}
	dev := models.Device{
		Platform:    strings.ToLower(platform),
		TokenHash:   hash,
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	p.devices = append(p.devices, dev)
	p.saveLocked(ctx)
	return &dev, nil
}

// SetEnabled toggles push delivery for every registered device.
func (p *PushService) SetEnabled(ctx context.Context, enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.devices {
		p.devices[i].Enabled = enabled
		p.devices[i].UpdatedAt = time.Now()
	}
	p.saveLocked(ctx)
}

func (p *PushService) saveLocked(ctx context.Context) {
	raw, err := json.Marshal(p.devices)
	if err != nil {
		log.Printf("[push] failed to encode devices: %v", err)
		return
	}
	if err := p.store.Set(ctx, models.DevicesKey, string(raw)); err != nil {
		log.Printf("[push] failed to persist devices: %v", err)
	}
}

// Deliver implements DeliverySink: publish the fired notification to every
// enabled endpoint. Per-endpoint publish errors are best-effort.
func (p *PushService) Deliver(n Notification) {
	if p.platformArn == "" {
		return
	}
	p.mu.Lock()
	targets := make([]string, 0, len(p.devices))
	for _, d := range p.devices {
		if d.Enabled {
			targets = append(targets, d.EndpointARN)
		}
	}
	p.mu.Unlock()
	if len(targets) == 0 {
		return
	}

	data := map[string]string{
		"notificationId": n.ID,
		"category":       n.Category,
		"channelId":      n.Channel,
		"sound":          n.Sound,
		"kind":           n.Kind,
	}
	msg := map[string]any{
		"default": n.Body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": n.Title,
				"body":  n.Body,
			},
			"data": data,
		},
	}
	raw, _ := json.Marshal(msg)
	for _, arn := range targets {
		_, _ = p.sns.Publish(context.TODO(), &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(arn),
		})
	}
}
