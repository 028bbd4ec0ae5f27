package main

const banner = `
  _____   _____ _             _
 / __\ \ / / __| |_ __ _  __ | |__
| (__ \ V /\__ \  _/ _` + "`" + ` |/ _|| / /
 \___| \_/ |___/\__\__,_|\__||_\_\
`
