// Package telegram is a chat front-end for the analysis service.
package telegram

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/torque_analyzer/analysis"
	"github.com/pivolan/torque_analyzer/domain/models"
	"github.com/pivolan/torque_analyzer/plot"
	"github.com/pivolan/torque_analyzer/report"
	"github.com/pivolan/torque_analyzer/sample"
	"github.com/pivolan/torque_analyzer/statistics"
)

const helpText = `This bot analyzes torque/angle fastening exports.

Send a CSV file (or a zip, gzip or lz4 archive of one) with the column mapping as the caption:
torqueStatus,torqueValue,angleStatus,angleValue

Status columns may be left empty, e.g. ",Torque,,Angle".
You can also send a plain list of numbers, e.g. "10,5 11 9,9".`

const defaultMaxBytes = 5 << 20

var (
	ErrBadCaption = errors.New("caption must list torqueStatus,torqueValue,angleStatus,angleValue")
	errTooLarge   = errors.New("file too large")
)

// API is the part of tgbotapi.BotAPI the bot needs.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Bot struct {
	api      API
	service  *analysis.Service
	client   *http.Client
	logger   *slog.Logger
	maxBytes int64
}

func NewBot(api API, service *analysis.Service, logger *slog.Logger, maxBytes int64) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Bot{
		api:      api,
		service:  service,
		client:   http.DefaultClient,
		logger:   logger.With(slog.String("component", "telegram")),
		maxBytes: maxBytes,
	}
}

// Run consumes updates until the channel is closed.
func (b *Bot) Run(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}
		go b.Handle(update.Message)
	}
}

func (b *Bot) Handle(message *tgbotapi.Message) {
	switch {
	case message.Document != nil:
		b.handleDocument(message)
	case message.Text != "":
		b.handleText(message)
	}
}

func (b *Bot) handleText(message *tgbotapi.Message) {
	if message.Command() == "" {
		if numbers := sample.ExtractNumbers(message.Text); len(numbers) > 0 {
			table := report.SampleTable(statistics.Compute(numbers), statistics.BoxPlot(numbers), report.StyleDefault)
			b.sendPre(message.Chat.ID, table)
			return
		}
	}
	b.sendText(message.Chat.ID, helpText)
}

func (b *Bot) handleDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	mapping, err := ParseCaption(message.Caption)
	if err != nil {
		b.sendText(chatID, err.Error()+"\n\n"+helpText)
		return
	}
	data, err := b.download(message.Document.FileID)
	if err != nil {
		b.logger.Error("download failed", slog.String("file", message.Document.FileName), slog.String("error", err.Error()))
		b.sendText(chatID, "Could not download the file: "+err.Error())
		return
	}

	result, err := b.service.Analyze(message.Document.FileName, data, mapping)
	if err != nil {
		b.sendText(chatID, "Analysis failed: "+err.Error())
		return
	}
	b.sendResult(chatID, result)
}

// ParseCaption reads a column mapping from a document caption.
func ParseCaption(caption string) (models.ColumnMapping, error) {
	parts := strings.Split(caption, ",")
	if len(parts) != 4 {
		return models.ColumnMapping{}, ErrBadCaption
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[1] == "" || parts[3] == "" {
		return models.ColumnMapping{}, ErrBadCaption
	}
	return models.ColumnMapping{
		TorqueStatus: parts[0],
		TorqueValue:  parts[1],
		AngleStatus:  parts[2],
		AngleValue:   parts[3],
	}, nil
}

func (b *Bot) download(fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}
	resp, err := b.client.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, b.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > b.maxBytes {
		return nil, errTooLarge
	}
	return data, nil
}

func (b *Bot) sendResult(chatID int64, result models.AnalysisResult) {
	b.sendPre(chatID, report.StatsTable(result.Stats, report.StyleDefault))
	b.sendPre(chatID, report.BoxPlotTable(result.Charts, report.StyleDefault))

	for _, bucket := range []struct {
		name   string
		charts models.BucketCharts
	}{
		{"torque_ok", result.Charts.OKTorque},
		{"angle_ok", result.Charts.OKAngle},
	} {
		b.sendBucketCharts(chatID, bucket.name, bucket.charts)
	}
}

func (b *Bot) sendBucketCharts(chatID int64, name string, charts models.BucketCharts) {
	graphs := []struct {
		kind string
		draw func(plot.RenderOptions) ([]byte, error)
	}{
		{"histogram", func(o plot.RenderOptions) ([]byte, error) { return plot.DrawHistogram(charts.Histogram, o) }},
		{"density", func(o plot.RenderOptions) ([]byte, error) { return plot.DrawNormalCurve(charts.NormalCurve, o) }},
		{"control", func(o plot.RenderOptions) ([]byte, error) { return plot.DrawControlChart(charts.ControlChart, o) }},
	}
	for _, g := range graphs {
		graph, err := g.draw(plot.DefaultRenderOptions(name))
		if errors.Is(err, plot.ErrNotEnoughPoints) {
			continue
		}
		if err != nil {
			b.logger.Error("render failed", slog.String("chart", g.kind), slog.String("error", err.Error()))
			continue
		}
		b.sendGraph(chatID, graph, g.kind, name)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("send message failed", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}

func (b *Bot) sendPre(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+text+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send table failed", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}
