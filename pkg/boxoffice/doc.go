// Package boxoffice maps box office queries onto invocations of the external
// data script.
//
// Each query kind has a fixed set of parameters and a fixed positional order
// on the script's command line:
//
//	daily     <date YYYY-MM-DD>
//	weekend   <year> <week>
//	weekly    <year> <week>
//	monthly   <year> <month 1-12>
//	seasonal  <year> <spring|summer|fall|winter>
//	quarterly <quarter 1-4> <year>
//	yearly    <year>
//
// Note the quarterly order: the script reads the quarter before the year,
// unlike every other kind.
//
// Queries are validated before the script runs; a missing or malformed
// parameter never reaches the invoker.
//
//	q, err := boxoffice.ParseQueryFromValues(boxoffice.KindWeekly, r.URL.Query())
//	if err != nil {
//	    return err // *errors.StructuredError with ErrCodeInvalidRequest
//	}
//	out, err := client.Get(ctx, q)
package boxoffice
