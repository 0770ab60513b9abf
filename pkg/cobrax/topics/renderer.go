package topics

import "github.com/spf13/cobra"

// Renderer formats a topic for the command that prints it
type Renderer func(cmd *cobra.Command, topic *Topic) string

// PlainRenderer prints the content unchanged
func PlainRenderer(cmd *cobra.Command, topic *Topic) string {
	return topic.Content
}
