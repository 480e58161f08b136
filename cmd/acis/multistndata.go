package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxdata/acis"
	"github.com/wxdata/acis/internal/reporter"
)

var (
	multiSids     string
	multiCounty   string
	multiState    string
	multiBbox     string
	multiDate     string
	multiStart    string
	multiEnd      string
	multiInterval string
	multiElems    string
	multiFields   string
)

var multiStnDataCmd = &cobra.Command{
	Use:   "multistndata",
	Short: "Fetch data for all sites matching a location",
	RunE:  runMultiStnData,
}

func init() {
	multiStnDataCmd.Flags().StringVar(&multiSids, "sids", "", "Comma-separated site identifiers")
	multiStnDataCmd.Flags().StringVar(&multiCounty, "county", "", "County FIPS code")
	multiStnDataCmd.Flags().StringVar(&multiState, "state", "", "State abbreviation")
	multiStnDataCmd.Flags().StringVar(&multiBbox, "bbox", "", "Bounding box: west,south,east,north")
	multiStnDataCmd.Flags().StringVar(&multiDate, "date", "", "Single date (YYYY[-MM[-DD]])")
	multiStnDataCmd.Flags().StringVar(&multiStart, "start", "", "Range start date")
	multiStnDataCmd.Flags().StringVar(&multiEnd, "end", "", "Range end date")
	multiStnDataCmd.Flags().StringVar(&multiInterval, "interval", "", "Interval: dly, mly, yly")
	multiStnDataCmd.Flags().StringVar(&multiElems, "elems", "", "Comma-separated element names (required)")
	multiStnDataCmd.Flags().StringVar(&multiFields, "meta", "name,state", "Metadata fields to request")
}

func runMultiStnData(cmd *cobra.Command, args []string) error {
	req := acis.NewMultiStnDataRequest(theApp.client)

	location := locationParams(multiSids, multiCounty, multiState, multiBbox)
	if len(location) == 0 {
		return fmt.Errorf("a location is required: one of --sids, --county, --state, --bbox")
	}
	req.Location(location)

	switch {
	case multiDate != "":
		if err := req.Dates(multiDate, ""); err != nil {
			return err
		}
	case multiStart != "":
		if err := req.Dates(multiStart, multiEnd); err != nil {
			return err
		}
	default:
		return fmt.Errorf("a date is required: --date or --start/--end")
	}

	if multiInterval != "" {
		if err := req.Interval(multiInterval); err != nil {
			return err
		}
	}

	elems := splitList(multiElems)
	if len(elems) == 0 {
		return fmt.Errorf("at least one element is required: --elems")
	}
	for _, name := range elems {
		req.AddElement(name, nil)
	}
	req.Metadata(splitList(multiFields)...)

	query, err := submit(cmd.Context(), theApp, "MultiStnData", req)
	if err != nil {
		return err
	}
	result, err := acis.NewMultiStnDataResult(query)
	if err != nil {
		return err
	}

	table := &reporter.Table{
		Title:   "MultiStnData",
		Columns: append([]string{"uid", "date"}, result.Elems...),
		Rows:    formatRecords(result.Records()),
		Meta:    metaTable(result.Meta),
	}
	return writeReport(table)
}
