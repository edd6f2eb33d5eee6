// Package generator turns rendered templates into file system operations
// and executes them.
//
// A generator produces a list of Operations. Execute validates every
// operation before running any of them, so a conflict is reported before
// the first byte is written:
//
//	ops, err := express.New(cfg).Generate()
//	if err != nil {
//	    return err
//	}
//	return generator.Execute(ctx, ops, generator.ExecuteOptions{Concurrency: 4})
//
// # Transactions
//
// A Transaction journals the paths a run creates so a failed run can be
// undone:
//
//	tx := generator.NewTransaction()
//	if err := tx.Execute(ctx, ops, opts); err != nil {
//	    tx.Rollback()
//	    return err
//	}
//	tx.Commit()
package generator
