//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package bot

const startReply = "Welcome to my space!"

const helpReply = `Welcome to your Crypto AI Assistant! Here's how I can help:
- Send a token contract address (e.g., 0x123...) for detailed token analysis, AI insights, and security score.
- Ask about token prices (e.g., "What's the price of $PEPE?") for current market data.
- Request token recommendations (e.g., "Suggest some DeFi tokens").
- Compare tokens (e.g., "Compare BTC and ETH").
- Get market trends (e.g., "How is the crypto market today?").
- Ask any crypto-related questions, and I'll provide informed answers.`

const unknownCommandReply = "Sorry, I don't know that command. Send /help to see what I can do."

const (
	specifySymbol  = `Please specify the token symbol (e.g., "What's the price of $PEPE?")`
	specifyMention = "Please specify your token mention (e.g: $popcat) to get valid information"

	addressNotFound = "Token not found or invalid address, Please try again."
	symbolNotFound  = "Token not found or invalid symbol, Please try again."

	addressUnavailable   = "I couldn't analyze this token right now. Please try again later."
	priceUnavailable     = "I couldn't fetch the token price right now. Please try again later."
	recommendUnavailable = "I couldn't generate token recommendations right now. Please try again later."
	compareUnavailable   = "I couldn't compare these tokens right now. Please try again later."
	trendsUnavailable    = "I couldn't analyze market trends right now. Please try again later."
	generalUnavailable   = "I couldn't answer your question right now. Please try again later."
)
