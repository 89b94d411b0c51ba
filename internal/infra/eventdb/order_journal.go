package eventdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	evt_model "github.com/RoyceAzure/lab/fulfillment/internal/domain/model/event"
	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
)

const orderStreamPrefix = "order-"

// JournalRecord 從 stream 讀回的原始事件
type JournalRecord struct {
	EventType string
	Data      []byte
}

// EsdbJournal 訂單生命週期流水帳, 每張訂單一個 stream
// 只做紀錄, 不作為訂單狀態的來源
type EsdbJournal struct {
	client *esdb.Client
}

func NewEsdbJournal(client *esdb.Client) *EsdbJournal {
	return &EsdbJournal{client: client}
}

func OrderStreamID(orderID string) string {
	return orderStreamPrefix + orderID
}

func (j *EsdbJournal) Append(ctx context.Context, orderID string, evt evt_model.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal journal event: %w", err)
	}
	eventData := esdb.EventData{
		ContentType: esdb.ContentTypeJson,
		EventType:   string(evt.Type()),
		Data:        payload,
	}
	_, err = j.client.AppendToStream(ctx, OrderStreamID(orderID), esdb.AppendToStreamOptions{}, eventData)
	return err
}

// Read 依寫入順序讀回, stream 不存在回傳空
func (j *EsdbJournal) Read(ctx context.Context, orderID string, max uint64) ([]JournalRecord, error) {
	stream, err := j.client.ReadStream(ctx, OrderStreamID(orderID), esdb.ReadStreamOptions{
		Direction: esdb.Forwards,
		From:      esdb.Start{},
	}, max)
	if err != nil {
		if isStreamNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	defer stream.Close()

	var records []JournalRecord
	for {
		event, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if isStreamNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		records = append(records, JournalRecord{
			EventType: event.OriginalEvent().EventType,
			Data:      event.OriginalEvent().Data,
		})
	}
	return records, nil
}

func (j *EsdbJournal) DeleteStream(ctx context.Context, orderID string) error {
	_, err := j.client.DeleteStream(ctx, OrderStreamID(orderID), esdb.DeleteStreamOptions{})
	return err
}

func isStreamNotFound(err error) bool {
	var esdbErr *esdb.Error
	if errors.As(err, &esdbErr) {
		return esdbErr.Code() == esdb.ErrorCodeResourceNotFound
	}
	return false
}

// NoopJournal 未設定 ESDB_URL 時使用
type NoopJournal struct{}

func (NoopJournal) Append(ctx context.Context, orderID string, evt evt_model.Event) error {
	return nil
}
