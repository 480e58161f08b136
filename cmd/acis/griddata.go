package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxdata/acis"
	"github.com/wxdata/acis/internal/reporter"
)

var (
	gridLoc   string
	gridBbox  string
	gridID    int
	gridDate  string
	gridStart string
	gridEnd   string
	gridElems string
)

var gridDataCmd = &cobra.Command{
	Use:   "griddata",
	Short: "Fetch gridded data for a point or bounding box",
	Long: `griddata retrieves values from a gridded dataset. A point ("--loc")
returns scalar values; a bounding box ("--bbox") returns rasters.`,
	RunE: runGridData,
}

func init() {
	gridDataCmd.Flags().StringVar(&gridLoc, "loc", "", "Point location: lon,lat")
	gridDataCmd.Flags().StringVar(&gridBbox, "bbox", "", "Bounding box: west,south,east,north")
	gridDataCmd.Flags().IntVar(&gridID, "grid", 1, "Grid identifier")
	gridDataCmd.Flags().StringVar(&gridDate, "date", "", "Single date (YYYY[-MM[-DD]])")
	gridDataCmd.Flags().StringVar(&gridStart, "start", "", "Range start date")
	gridDataCmd.Flags().StringVar(&gridEnd, "end", "", "Range end date")
	gridDataCmd.Flags().StringVar(&gridElems, "elems", "", "Comma-separated element names (required)")
}

// rawRequest adapts a hand-built params object to the submit helper for
// call types without a builder.
type rawRequest struct {
	client   *acis.Client
	callType string
	params   acis.Params
}

func (r *rawRequest) Params() acis.Params {
	return r.params
}

func (r *rawRequest) Submit(ctx context.Context) (*acis.Query, error) {
	result, err := r.client.Call(ctx, r.callType, r.params)
	if err != nil {
		return nil, err
	}
	return &acis.Query{Params: r.params, Result: result}, nil
}

func runGridData(cmd *cobra.Command, args []string) error {
	params := acis.Params{"grid": gridID}

	switch {
	case gridLoc != "":
		params["loc"] = gridLoc
	case gridBbox != "":
		params["bbox"] = gridBbox
	default:
		return fmt.Errorf("a location is required: --loc or --bbox")
	}

	switch {
	case gridDate != "":
		params["date"] = gridDate
	case gridStart != "":
		params["sdate"] = gridStart
		params["edate"] = gridEnd
	default:
		return fmt.Errorf("a date is required: --date or --start/--end")
	}

	elems := splitList(gridElems)
	if len(elems) == 0 {
		return fmt.Errorf("at least one element is required: --elems")
	}
	elemParams := make([]acis.Params, len(elems))
	for i, name := range elems {
		elemParams[i] = acis.Params{"name": name}
	}
	params["elems"] = elemParams

	req := &rawRequest{client: theApp.client, callType: "GridData", params: params}
	query, err := submit(cmd.Context(), theApp, "GridData", req)
	if err != nil {
		return err
	}
	result, err := acis.NewGridDataResult(query)
	if err != nil {
		return err
	}

	table := &reporter.Table{
		Title:   "GridData",
		Columns: append([]string{"pos", "date"}, result.Elems...),
		Rows:    formatRecords(result.Records()),
	}
	return writeReport(table)
}
