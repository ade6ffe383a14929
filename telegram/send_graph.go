package telegram

import (
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// maxPhotoBytes is the largest image sent as a photo; bigger ones go as documents.
const maxPhotoBytes = 150000

func (b *Bot) sendGraph(chatID int64, graph []byte, kind, bucket string) {
	file := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("%s_%s_%s.png", kind, bucket, time.Now().Format("20060102-150405")),
		Bytes: graph,
	}

	var msg tgbotapi.Chattable
	if len(graph) < maxPhotoBytes {
		photo := tgbotapi.NewPhotoUpload(chatID, file)
		photo.Caption = graphCaption(kind, bucket)
		msg = photo
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, file)
		doc.Caption = graphCaption(kind, bucket)
		msg = doc
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send graph failed", slog.String("chart", kind), slog.String("bucket", bucket), slog.String("error", err.Error()))
		b.sendText(chatID, fmt.Sprintf("Could not send the %s chart: %v", kind, err))
	}
}

func graphCaption(kind, bucket string) string {
	switch kind {
	case "histogram":
		return fmt.Sprintf("Histogram: %s\nFrequency of values in equal width bins.", bucket)
	case "density":
		return fmt.Sprintf("Normal curve: %s\nDensity of a normal distribution with the sample mean and stddev.", bucket)
	case "control":
		return fmt.Sprintf("Control chart: %s\nValues in row order with the mean and ±3σ limits.", bucket)
	default:
		return "Chart: " + bucket
	}
}
