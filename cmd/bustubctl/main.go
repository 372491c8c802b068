// Command bustubctl exercises the LRU-K replacer and the cardinality
// estimators from the command line: replaying access traces under
// concurrent simulated load, and estimating distinct-key counts over a
// file of keys.
package main

import (
	"context"

	"github.com/mackushev/bustub/cmd/bustubctl/app"
)

func main() {
	app.MustExecute(context.Background())
}
