package registry

// Mainnet token and pool tables. The USDC/WETH pair appears twice on
// purpose: pair lookups resolve to the first declaration.

// MainnetTokens lists the tokens the default registry knows about.
var MainnetTokens = []TokenEntry{
	{Symbol: "SHUF", Address: "0x3A9FfF453d50D4Ac52A6890647b823379ba36B9E", Decimals: 18},
	{Symbol: "DAI", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18},
	{Symbol: "USDC", Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Decimals: 6},
	{Symbol: "0xBTC", Address: "0xB6eD7644C69416d67B522e20bC294A9a9B405B31", Decimals: 8},
	{Symbol: "WETH", Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18},
	{Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6},
}

// MainnetPools lists the known V2 pair contracts.
var MainnetPools = []PoolEntry{
	{TokenA: "0xBTC", TokenB: "WETH", Address: "0xc12c4c3E0008B838F75189BFb39283467cf6e5b3"},
	{TokenA: "DAI", TokenB: "0xBTC", Address: "0x095739e9Ea7B0d11CeE1c1134FB76549B610f4F3"},
	{TokenA: "USDC", TokenB: "0xBTC", Address: "0xA99F7Bc92c932A2533909633AB19cD7F04805059"},
	{TokenA: "SHUF", TokenB: "0xBTC", Address: "0x1f9119d778d0B631f9B3b8974010ea2B750e4d33"},
	{TokenA: "DAI", TokenB: "WETH", Address: "0xA478c2975Ab1Ea89e8196811F51A7B7Ade33eB11"},
	{TokenA: "USDC", TokenB: "WETH", Address: "0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"},
	{TokenA: "DAI", TokenB: "USDT", Address: "0xB20bd5D04BE54f870D5C0d3cA85d82b34B836405"},
	{TokenA: "DAI", TokenB: "USDC", Address: "0xAE461cA67B15dc8dc81CE7615e0320dA1A9aB8D5"},
	{TokenA: "WETH", TokenB: "USDT", Address: "0x0d4a11d5EEaaC28EC3F61d100daF4d40471f1852"},
	{TokenA: "USDC", TokenB: "WETH", Address: "0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"},
}

// Mainnet builds the default mainnet registry.
func Mainnet() (*Registry, error) {
	return New(MainnetTokens, MainnetPools)
}
