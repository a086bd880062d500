package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/repositories"
	"github.com/adsradar/adsradar-backend/utils"
)

// RunListAccounts prints the ad accounts visible to the configured access
// token. Useful to verify credentials before scheduling runs; does not
// touch the database.
func RunListAccounts() error {
	config := loadTrackerConfig()
	logger := utils.NewLogger(config.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	accounts, err := repositories.NewGraphApiRepository(config.graph).ListAdAccounts(ctx)
	if err != nil {
		return errors.Wrap(err, "listing ad accounts")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT_ID\tNAME\tBRAND")
	for _, account := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", account.Id, account.Name, account.Brand())
	}
	return w.Flush()
}
