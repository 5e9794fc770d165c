package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wallcheck/pkg/blueprint"
)

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	var (
		decode     bool
		directions string
	)

	cmd := &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Convert blueprint JSON to an exchange string",
		Long: `Encode compresses a blueprint JSON document into an exchange string. With
--decode it does the reverse and prints the document as indented JSON.

Entities are validated either way, so encode also works as a linter for
hand-written fixtures.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := blueprint.ParseDirectionEncoding(directions)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if decode {
				return decodeTo(cmd.OutOrStdout(), raw, enc)
			}
			return encodeTo(cmd.OutOrStdout(), raw, enc)
		},
	}

	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "decode an exchange string to JSON")
	cmd.Flags().StringVar(&directions, "direction-encoding", string(blueprint.EightWay), "direction encoding: eight-way or four-way")

	return cmd
}

func encodeTo(w io.Writer, doc string, enc blueprint.DirectionEncoding) error {
	bp, err := blueprint.DecodeJSON([]byte(doc), blueprint.Options{Directions: enc})
	if err != nil {
		return err
	}
	s, err := blueprint.Encode(bp, enc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

func decodeTo(w io.Writer, s string, enc blueprint.DirectionEncoding) error {
	bp, err := blueprint.Decode(s, blueprint.Options{Directions: enc})
	if err != nil {
		return err
	}
	data, err := blueprint.EncodeJSON(bp, enc)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}
