// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool       = "tickd"
	BannerBlue = `
  o8      o88             oooo
o888oo   oooo   ooooo     888  oo0o
  888     888  888        888o0o
  888     888  888        888 0oo
  o888o  o888o  ooo0o    o888o o88o
`
	BannerGold = `
      oo8
  oo0o888
 o88  888
 0oo  888
  o00o888    vversion
`
	DocRoot = "https://docs.tickd.io/en/latest"
)
