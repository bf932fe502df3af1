package mongodb

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TxManager runs grouped writes in a multi-document transaction. Standalone
// servers reject transactions, so with enabled=false the writes run one after
// another and a failure between them is only logged.
type TxManager struct {
	client  *mongo.Client
	enabled bool
	logger  *logger.Logger
}

func NewTxManager(client *mongo.Client, enabled bool, log *logger.Logger) *TxManager {
	l := log.Named("TxManager")
	if !enabled {
		l.Warn("MongoDB transactions disabled; listing and review writes are not atomic")
	}
	return &TxManager{client: client, enabled: enabled, logger: l}
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.enabled {
		if err := fn(ctx); err != nil {
			m.logger.Error("Non-transactional write sequence failed, data may be partially written", zap.Error(err))
			return err
		}
		return nil
	}

	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		m.logger.Warn("Transaction aborted", zap.Error(err))
		return err
	}
	return nil
}
