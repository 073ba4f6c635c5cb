// Package icons regenerates the icon tables of a UI component package from
// its SVG assets.
//
// Every file matching style/icons/**/*.svg becomes one icon. For an asset
// style/icons/toolbar/add.svg in package ui-components the generator emits:
//
//	// src/icon/iconimports.ts
//	import addSvgstr from '../../style/icons/toolbar/add.svg';
//	export const addIcon = new LabIcon({ name: 'ui-components:add', svgstr: addSvgstr });
//
//	/* style/deprecated.css */
//	--jp-icon-add: url('icons/toolbar/add.svg');
//	.jp-AddIcon {background-image: var(--jp-icon-add)}
//
// Assets keep the order in which the directory walk finds them. The TS
// module is written verbatim; the CSS file goes through the configured
// formatter. Both are only rewritten when their contents change.
package icons
