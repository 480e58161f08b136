package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wxdata/acis"
	"github.com/wxdata/acis/internal/reporter"
)

var (
	metaSids   string
	metaCounty string
	metaState  string
	metaBbox   string
	metaElems  string
	metaStart  string
	metaEnd    string
	metaFields string
)

var stnMetaCmd = &cobra.Command{
	Use:   "stnmeta",
	Short: "Fetch metadata for the sites matching a location",
	RunE:  runStnMeta,
}

func init() {
	stnMetaCmd.Flags().StringVar(&metaSids, "sids", "", "Comma-separated site identifiers")
	stnMetaCmd.Flags().StringVar(&metaCounty, "county", "", "County FIPS code")
	stnMetaCmd.Flags().StringVar(&metaState, "state", "", "State abbreviation")
	stnMetaCmd.Flags().StringVar(&metaBbox, "bbox", "", "Bounding box: west,south,east,north")
	stnMetaCmd.Flags().StringVar(&metaElems, "elems", "", "Only sites reporting these elements")
	stnMetaCmd.Flags().StringVar(&metaStart, "start", "", "Only sites with data on or after this date")
	stnMetaCmd.Flags().StringVar(&metaEnd, "end", "", "Only sites with data on or before this date")
	stnMetaCmd.Flags().StringVar(&metaFields, "meta", "name,state", "Metadata fields to request")
}

// locationParams builds the area options shared by StnMeta and MultiStnData.
func locationParams(sids, county, state, bbox string) acis.Params {
	options := acis.Params{}
	if sids != "" {
		options["sids"] = sids
	}
	if county != "" {
		options["county"] = county
	}
	if state != "" {
		options["state"] = state
	}
	if bbox != "" {
		options["bbox"] = bbox
	}
	return options
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func runStnMeta(cmd *cobra.Command, args []string) error {
	req := acis.NewStnMetaRequest(theApp.client)

	location := locationParams(metaSids, metaCounty, metaState, metaBbox)
	if len(location) == 0 {
		return fmt.Errorf("a location is required: one of --sids, --county, --state, --bbox")
	}
	req.Location(location)

	if metaElems != "" {
		req.Elements(splitList(metaElems)...)
	}
	if metaStart != "" {
		if err := req.Dates(metaStart, metaEnd); err != nil {
			return err
		}
	}
	fields := splitList(metaFields)
	req.Metadata(fields...)

	query, err := submit(cmd.Context(), theApp, "StnMeta", req)
	if err != nil {
		return err
	}
	result, err := acis.NewStnMetaResult(query)
	if err != nil {
		return err
	}

	uids := make([]int, 0, len(result.Meta))
	for uid := range result.Meta {
		uids = append(uids, uid)
	}
	sort.Ints(uids)

	table := &reporter.Table{
		Title:   "StnMeta",
		Columns: append([]string{"uid"}, fields...),
	}
	for _, uid := range uids {
		site := decodeSids(result.Meta[uid])
		row := []string{fmt.Sprintf("%d", uid)}
		for _, field := range fields {
			if value, ok := site[field]; ok {
				row = append(row, formatValue(value))
			} else {
				row = append(row, "")
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return writeReport(table)
}
