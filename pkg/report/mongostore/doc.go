// Package mongostore persists validation run reports in MongoDB.
//
// Each run is one document in the validation_runs collection, keyed by the
// run ID. The store satisfies report.Store:
//
//	client, err := mongostore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(ctx)
//
//	store := mongostore.New(client.Database(cfg.Database))
package mongostore
